package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RunReview starts the interactive TUI review program.
// It shows the review screen, then transitions to summary.
// Returns the final ReviewSession with user decisions.
func RunReview(session *ReviewSession) (*ReviewSession, error) {
	reviewModel := NewReviewModel(session)
	p := tea.NewProgram(reviewModel, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("TUI error: %w", err)
	}

	final := finalModel.(ReviewModel)

	summaryModel := NewSummaryModel(final.session)
	sp := tea.NewProgram(summaryModel, tea.WithAltScreen())
	if _, err := sp.Run(); err != nil {
		return nil, fmt.Errorf("summary error: %w", err)
	}

	return final.session, nil
}

// ReviewReport represents the JSON structure for the review report
type ReviewReport struct {
	Timestamp  string              `json:"timestamp"`
	Frameworks []string            `json:"frameworks"`
	Items      []ReviewReportItem  `json:"items"`
	Summary    ReviewReportSummary `json:"summary"`
}

// ReviewReportItem represents a single review item in the report
type ReviewReportItem struct {
	Component string `json:"component"`
	Framework string `json:"framework"`
	Source    string `json:"source"`
	File      string `json:"file"`
	Status    string `json:"status"`
	Note      string `json:"note,omitempty"`
}

// ReviewReportSummary represents the summary statistics
type ReviewReportSummary struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Pending  int `json:"pending"`
}

// NewReviewReport builds the report for session.
func NewReviewReport(session *ReviewSession) ReviewReport {
	items := make([]ReviewReportItem, 0, len(session.Items))
	for _, item := range session.Items {
		items = append(items, ReviewReportItem{
			Component: item.Component,
			Framework: item.Framework,
			Source:    item.SourcePath,
			File:      item.FilePath,
			Status:    item.Status.String(),
			Note:      item.Note,
		})
	}

	approved, rejected, pending := session.Counts()
	return ReviewReport{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Frameworks: session.Frameworks,
		Items:      items,
		Summary: ReviewReportSummary{
			Total:    len(session.Items),
			Approved: approved,
			Rejected: rejected,
			Pending:  pending,
		},
	}
}

// SaveReviewReport writes a JSON report of the review decisions.
func SaveReviewReport(session *ReviewSession, outputPath string) error {
	data, err := json.MarshalIndent(NewReviewReport(session), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
