package prompt

import (
	"context"
	"fmt"

	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/types"
)

// Reply is one canned answer for Scripted.
type Reply struct {
	Cancel    bool
	Direction types.Point
	Yes       bool
	Choice    int
	Text      string
	Input     Input
}

// Cancel is a reply that cancels whatever prompt consumes it.
var Cancel = Reply{Cancel: true}

// Dir answers a direction prompt.
func Dir(x, y int) Reply { return Reply{Direction: types.Point{X: x, Y: y}} }

// Yes answers a confirmation with yes.
func Yes() Reply { return Reply{Yes: true} }

// No answers a confirmation with no.
func No() Reply { return Reply{} }

// Pick answers a multi-choice prompt.
func Pick(id int) Reply { return Reply{Choice: id} }

// Say answers a text prompt.
func Say(s string) Reply { return Reply{Text: s} }

// Press answers a browser prompt.
func Press(k Key, slot int) Reply { return Reply{Input: Input{Key: k, Slot: slot}} }

// Scripted replays canned replies in order. It is the non-interactive
// Prompter used by replays and tests; running out of replies cancels.
type Scripted struct {
	Replies  []Reply
	Asked    []string
	Pages    []Page
	Exhausts int
}

// NewScripted returns a Scripted prompter with the given replies.
func NewScripted(replies ...Reply) *Scripted {
	return &Scripted{Replies: replies}
}

func (s *Scripted) next(msg string) (Reply, error) {
	s.Asked = append(s.Asked, msg)
	if len(s.Replies) == 0 {
		s.Exhausts++
		return Reply{}, errs.Cancelled()
	}
	r := s.Replies[0]
	s.Replies = s.Replies[1:]
	if r.Cancel {
		return Reply{}, errs.Cancelled()
	}
	return r, nil
}

// Direction implements Prompter.
func (s *Scripted) Direction(_ context.Context, msg string) (types.Point, error) {
	r, err := s.next(msg)
	return r.Direction, err
}

// YesNo implements Prompter.
func (s *Scripted) YesNo(_ context.Context, msg string) (bool, error) {
	r, err := s.next(msg)
	return r.Yes, err
}

// Choose implements Prompter. The reply must name one of the options.
func (s *Scripted) Choose(_ context.Context, msg string, options []Option) (int, error) {
	r, err := s.next(msg)
	if err != nil {
		return 0, err
	}
	for _, o := range options {
		if o.ID == r.Choice {
			return r.Choice, nil
		}
	}
	return 0, errs.Internalf("scripted choice %d not offered: %s", r.Choice, fmt.Sprint(options))
}

// Text implements Prompter.
func (s *Scripted) Text(_ context.Context, msg string, _ int) (string, error) {
	r, err := s.next(msg)
	return r.Text, err
}

// Browse implements Prompter.
func (s *Scripted) Browse(_ context.Context, page Page) (Input, error) {
	s.Pages = append(s.Pages, page)
	r, err := s.next(page.Title)
	return r.Input, err
}
