package tui

import (
	"strings"
	"time"

	"github.com/efebarandurmaz/svgsmith/internal/convert"
)

// ReviewStatus represents the review state of a generated component
type ReviewStatus int

const (
	ReviewPending ReviewStatus = iota
	ReviewApproved
	ReviewRejected
)

// String returns the string representation of ReviewStatus
func (s ReviewStatus) String() string {
	switch s {
	case ReviewPending:
		return "pending"
	case ReviewApproved:
		return "approved"
	case ReviewRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ReviewItem is one generated component for one framework
type ReviewItem struct {
	Component  string
	Framework  string
	SourcePath string
	Original   string // source SVG markup
	Generated  string // emitted component code
	FilePath   string // path relative to the framework directory
	Status     ReviewStatus
	Note       string
}

// SizeRatio is the generated size over the source size.
func (it *ReviewItem) SizeRatio() float64 {
	if len(it.Original) == 0 {
		return 0
	}
	return float64(len(it.Generated)) / float64(len(it.Original))
}

// ReviewSession holds all items for a review
type ReviewSession struct {
	Items      []*ReviewItem
	Frameworks []string
	CreatedAt  time.Time
}

// NewReviewSession creates one item per generated result. Failed outcomes
// have nothing to review and are left out.
func NewReviewSession(outcomes []convert.Outcome) *ReviewSession {
	session := &ReviewSession{
		Items:     make([]*ReviewItem, 0),
		CreatedAt: time.Now(),
	}

	seen := map[string]bool{}
	for _, o := range outcomes {
		if o.Err != nil {
			continue
		}
		for _, r := range o.Results {
			if !seen[r.Framework] {
				seen[r.Framework] = true
				session.Frameworks = append(session.Frameworks, r.Framework)
			}
			session.Items = append(session.Items, &ReviewItem{
				Component:  componentName(r),
				Framework:  r.Framework,
				SourcePath: o.Request.Path,
				Original:   o.Request.Markup,
				Generated:  r.Code,
				FilePath:   r.Path,
				Status:     ReviewPending,
			})
		}
	}
	return session
}

func componentName(r convert.Result) string {
	return strings.TrimSuffix(r.Path, r.Extension)
}

// Counts tallies the items by status.
func (s *ReviewSession) Counts() (approved, rejected, pending int) {
	for _, item := range s.Items {
		switch item.Status {
		case ReviewApproved:
			approved++
		case ReviewRejected:
			rejected++
		default:
			pending++
		}
	}
	return approved, rejected, pending
}

// Apply removes rejected results from outcomes. An outcome left without
// results is dropped. Pending items are kept.
func (s *ReviewSession) Apply(outcomes []convert.Outcome) []convert.Outcome {
	type key struct{ source, framework string }
	rejected := map[key]bool{}
	for _, item := range s.Items {
		if item.Status == ReviewRejected {
			rejected[key{item.SourcePath, item.Framework}] = true
		}
	}

	out := make([]convert.Outcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			out = append(out, o)
			continue
		}
		kept := make([]convert.Result, 0, len(o.Results))
		for _, r := range o.Results {
			if !rejected[key{o.Request.Path, r.Framework}] {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			continue
		}
		o.Results = kept
		out = append(out, o)
	}
	return out
}
