package postgresql

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/dataset"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/database"
)

const (
	assignmentsTable = "manager_agents"
	activityTable    = "agent_activity"
)

type datasetSourceImpl struct {
	db *database.DB
}

// NewDatasetSource reads assignments from manager_agents and activity from agent_activity.
func NewDatasetSource(db *database.DB) dataset.Source {
	return &datasetSourceImpl{db: db}
}

func (r *datasetSourceImpl) LoadAssignments(ctx context.Context) ([]dataset.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	columns, err := r.tableColumns(ctx, assignmentsTable)
	if err != nil {
		return nil, err
	}
	if missing := missing(columns, "manager", "agent"); len(missing) > 0 {
		return nil, &dataset.DataFormatError{Dataset: "assignment", Missing: missing}
	}

	query := `
		SELECT COALESCE(manager, ''), COALESCE(agent, '')
		FROM manager_agents
		ORDER BY id
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []dataset.Assignment
	for rows.Next() {
		var a dataset.Assignment
		if err := rows.Scan(&a.Manager, &a.Agent); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Manager = strings.TrimSpace(a.Manager)
		a.Agent = strings.TrimSpace(a.Agent)
		if a.Agent == "" {
			continue
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read assignments: %w", err)
	}

	slog.InfoContext(ctx, "Assignments loaded", "table", assignmentsTable, "rows", len(assignments))
	return assignments, nil
}

func (r *datasetSourceImpl) LoadActivity(ctx context.Context) (dataset.ActivitySet, error) {
	q := GetQuerier(ctx, r.db)

	columns, err := r.tableColumns(ctx, activityTable)
	if err != nil {
		return dataset.ActivitySet{}, err
	}
	if missing := missing(columns, "date", "agent", "alerts", "manual_alerts", "marked"); len(missing) > 0 {
		return dataset.ActivitySet{}, &dataset.DataFormatError{Dataset: "activity", Missing: missing}
	}

	set := dataset.ActivitySet{Columns: append([]string(nil), dataset.ActivityColumns...)}
	location := "''"
	if columns["location"] {
		location = "COALESCE(location, '')"
		set.Columns = append(set.Columns, dataset.ColumnLocation)
	}

	query := fmt.Sprintf(`
		SELECT date, COALESCE(agent, ''),
			COALESCE(alerts, 0), COALESCE(manual_alerts, 0), COALESCE(marked, 0),
			%s
		FROM agent_activity
		ORDER BY id
	`, location)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return dataset.ActivitySet{}, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec  dataset.Activity
			date *time.Time
		)
		if err := rows.Scan(&date, &rec.Agent, &rec.Alerts, &rec.ManualAlerts, &rec.Marked, &rec.Location); err != nil {
			return dataset.ActivitySet{}, fmt.Errorf("failed to scan activity: %w", err)
		}
		if date != nil {
			y, m, d := date.Date()
			rec.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		}
		rec.Agent = strings.TrimSpace(rec.Agent)
		rec.Location = strings.TrimSpace(rec.Location)
		set.Records = append(set.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return dataset.ActivitySet{}, fmt.Errorf("failed to read activity: %w", err)
	}

	slog.InfoContext(ctx, "Activity loaded", "table", activityTable, "rows", len(set.Records), "columns", set.Columns)
	return set, nil
}

func (r *datasetSourceImpl) tableColumns(ctx context.Context, table string) (map[string]bool, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
	`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return columns, nil
}

func missing(columns map[string]bool, required ...string) []string {
	var out []string
	for _, c := range required {
		if !columns[c] {
			out = append(out, c)
		}
	}
	return out
}
