// Package prompt defines the blocking input contract handlers use for
// sub-prompts. A cancelled prompt returns an errs.CodeCancelled error.
package prompt

import (
	"context"

	"github.com/nathoo/turncore/types"
)

// Option is one entry of a multi-choice prompt.
type Option struct {
	ID    int
	Label string
}

// Key is a target-browser input.
type Key int

const (
	KeyNone Key = iota
	KeySelect
	KeyConfirm
	KeyUp
	KeyDown
	KeyNextPage
	KeyPrevPage
	KeyCancel
)

// Input is one keypress in the target browser. Slot is the page-relative
// entry for KeySelect.
type Input struct {
	Key  Key
	Slot int
}

// Entry is one candidate shown on a browser page.
type Entry struct {
	Label    string
	Distance int
	Position types.Point
}

// Page is what the target browser shows between inputs.
type Page struct {
	Title   string
	Entries []Entry
	Cursor  int
	Page    int
	Pages   int
	Route   []types.Point
}

// Prompter blocks until the player answers.
type Prompter interface {
	// Direction asks for one of the eight neighbouring offsets, or the
	// zero offset for the actor's own cell.
	Direction(ctx context.Context, msg string) (types.Point, error)
	// YesNo asks for a confirmation. Declining is (false, nil).
	YesNo(ctx context.Context, msg string) (bool, error)
	// Choose returns the ID of the picked option.
	Choose(ctx context.Context, msg string, options []Option) (int, error)
	// Text reads a free-form line of at most max runes.
	Text(ctx context.Context, msg string, max int) (string, error)
	// Browse shows a target page and returns the next input.
	Browse(ctx context.Context, page Page) (Input, error)
}
