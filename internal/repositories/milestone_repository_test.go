package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
	"time"

	"freelanceBack/internal/models"
)

// rowDriver serves a fixed result set for every query so row scanning can be
// exercised against NULL columns without a running MySQL.
type rowDriver struct {
	cols []string
	rows [][]driver.Value
}

func (d *rowDriver) Open(string) (driver.Conn, error) { return &rowConn{d: d}, nil }

func openRowDB(cols []string, rows ...[]driver.Value) *sql.DB {
	return sql.OpenDB(rowConnector{d: &rowDriver{cols: cols, rows: rows}})
}

type rowConnector struct{ d *rowDriver }

func (c rowConnector) Connect(context.Context) (driver.Conn, error) { return c.d.Open("") }
func (c rowConnector) Driver() driver.Driver                        { return c.d }

type rowConn struct{ d *rowDriver }

func (c *rowConn) Prepare(string) (driver.Stmt, error) { return &rowStmt{d: c.d}, nil }
func (c *rowConn) Close() error                        { return nil }
func (c *rowConn) Begin() (driver.Tx, error)           { return nil, errors.New("transactions not supported") }

type rowStmt struct{ d *rowDriver }

func (s *rowStmt) Close() error                               { return nil }
func (s *rowStmt) NumInput() int                              { return -1 }
func (s *rowStmt) Exec([]driver.Value) (driver.Result, error) { return driver.RowsAffected(1), nil }
func (s *rowStmt) Query([]driver.Value) (driver.Rows, error)  { return &rowSet{d: s.d}, nil }

type rowSet struct {
	d   *rowDriver
	pos int
}

func (r *rowSet) Columns() []string { return r.d.cols }
func (r *rowSet) Close() error      { return nil }
func (r *rowSet) Next(dest []driver.Value) error {
	if r.pos >= len(r.d.rows) {
		return io.EOF
	}
	copy(dest, r.d.rows[r.pos])
	r.pos++
	return nil
}

var milestoneCols = []string{
	"id", "project_id", "freelancer_id", "title", "description", "amount",
	"status", "attachment_url", "client_feedback", "submitted_at", "approved_at",
	"created_at", "updated_at",
}

func pendingMilestoneRow(now time.Time) []driver.Value {
	return []driver.Value{
		"m1", "p1", "f1", "Wireframes", "initial drafts", 150.0,
		models.MilestoneStatusPending, nil, nil, nil, nil, now, now,
	}
}

func TestGetMilestoneByID_NullColumns(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	repo := &MilestoneRepository{DB: openRowDB(milestoneCols, pendingMilestoneRow(now))}

	m, err := repo.GetMilestoneByID(context.Background(), "m1")
	if err != nil {
		t.Fatalf("GetMilestoneByID: %v", err)
	}
	if m.AttachmentURL != "" {
		t.Errorf("attachment url = %q, want empty for unsubmitted milestone", m.AttachmentURL)
	}
	if m.ClientFeedback != "" {
		t.Errorf("client feedback = %q, want empty", m.ClientFeedback)
	}
	if m.SubmittedAt != nil || m.ApprovedAt != nil {
		t.Errorf("timestamps should stay nil before submission")
	}
	if m.Title != "Wireframes" || m.Amount != 150.0 {
		t.Errorf("unexpected row: %+v", m)
	}
}

func TestGetMilestonesByProjectID_NullColumns(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	repo := &MilestoneRepository{DB: openRowDB(milestoneCols,
		pendingMilestoneRow(now),
		[]driver.Value{
			"m2", "p1", "f1", "Final build", "", 300.0,
			models.MilestoneStatusSubmitted, "https://cdn.example.com/m2.zip", nil, now, nil, now, now,
		},
	)}

	milestones, err := repo.GetMilestonesByProjectID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetMilestonesByProjectID: %v", err)
	}
	if len(milestones) != 2 {
		t.Fatalf("got %d milestones, want 2", len(milestones))
	}
	if milestones[0].AttachmentURL != "" {
		t.Errorf("pending milestone attachment = %q, want empty", milestones[0].AttachmentURL)
	}
	if milestones[1].AttachmentURL != "https://cdn.example.com/m2.zip" {
		t.Errorf("submitted milestone attachment = %q", milestones[1].AttachmentURL)
	}
	if milestones[1].ClientFeedback != "" {
		t.Errorf("client feedback = %q, want empty", milestones[1].ClientFeedback)
	}
}
