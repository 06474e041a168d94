package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-gentpl/pkg/manifest"
	"github.com/goliatone/go-gentpl/pkg/orchestrator"
)

// Selector asks which manifest runs to render. Runs enabled in the manifest
// start selected.
type Selector struct {
	Driver Driver

	// Confirm asks for a final go-ahead after the selection.
	Confirm bool

	// ConfirmOverwrite asks before each selected overwrite run whose
	// destination already exists; declined runs are dropped.
	ConfirmOverwrite bool
}

var _ orchestrator.Selector = (*Selector)(nil)

// NewSelector returns a Selector that prompts through driver.
func NewSelector(driver Driver, confirm bool) *Selector {
	return &Selector{Driver: driver, Confirm: confirm}
}

// Select implements orchestrator.Selector.
func (s *Selector) Select(ctx context.Context, candidates []orchestrator.Candidate) ([]string, error) {
	if s == nil || s.Driver == nil {
		return nil, errors.New("prompt: selector has no driver")
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	options := make([]string, 0, len(candidates))
	var defaults []int
	for idx, c := range candidates {
		options = append(options, fmt.Sprintf("%s -> %s", c.Name, c.Output))
		if c.Enabled {
			defaults = append(defaults, idx)
		}
	}

	picked, err := s.Driver.MultiSelect(ctx, MultiSelectConfig{
		Message:  "Templates to render",
		Options:  options,
		Defaults: defaults,
		PageSize: 15,
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(picked))
	for _, idx := range picked {
		if idx < 0 || idx >= len(candidates) {
			continue
		}
		c := candidates[idx]
		if s.ConfirmOverwrite && c.Exists && c.Mode != manifest.ModeIfAbsent {
			ok, err := s.Driver.Confirm(ctx, ConfirmConfig{
				Message: fmt.Sprintf("Overwrite %s?", c.Path),
				Default: false,
			})
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		names = append(names, c.Name)
	}

	if s.Confirm && len(names) > 0 {
		ok, err := s.Driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Render %d template(s)?", len(names)),
			Default: true,
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
	}
	return names, nil
}
