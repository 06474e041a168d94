package fsrouter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/goliatone/go-gentpl/pkg/output"
)

func encodeText(text, name string) ([]byte, error) {
	var enc encoding.Encoding
	switch name {
	case output.EncodingUTF8:
		return []byte(text), nil
	case output.EncodingUTF8BOM:
		enc = unicode.UTF8BOM
	case output.EncodingUTF16LE:
		enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case output.EncodingUTF16BE:
		enc = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case output.EncodingLatin1:
		enc = charmap.ISO8859_1
	case output.EncodingWindows1252:
		enc = charmap.Windows1252
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}

	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode as %s: %w", name, err)
	}
	return out, nil
}

func normalizeLineEndings(text, mode string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case output.LineEndingLF:
		return strings.ReplaceAll(text, "\r\n", "\n")
	case output.LineEndingCRLF:
		lf := strings.ReplaceAll(text, "\r\n", "\n")
		return strings.ReplaceAll(lf, "\n", "\r\n")
	default:
		return text
	}
}

var (
	htmlPolicyOnce   sync.Once
	htmlPolicy       *bluemonday.Policy
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

func sanitize(text, policy string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case "":
		return text, nil
	case output.SanitizeHTML:
		return htmlSanitizer().Sanitize(text), nil
	case output.SanitizeStrict:
		return strictSanitizer().Sanitize(text), nil
	default:
		return "", fmt.Errorf("unsupported sanitize policy %q", policy)
	}
}

func htmlSanitizer() *bluemonday.Policy {
	htmlPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class", "id").Globally()
		htmlPolicy = policy
	})
	return htmlPolicy
}

func strictSanitizer() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}
