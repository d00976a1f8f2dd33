package repository

import (
	"context"

	interfaces "school-api/internal/interfaces/infrastructure"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ReportRepository serves the roster and transcript read models. The queries
// join across the registration graph, so they run as plain SQL through sqlx
// instead of the ORM.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

var _ interfaces.ReportRepository = (*ReportRepository)(nil)

const rosterQuery = `
SELECT a.assignment_id,
       t.name    AS teacher_name,
       c.name    AS course_name,
       g.name    AS grade_name,
       sec.name  AS section_name,
       sch.start_time,
       sch.end_time
FROM teacher_course_assignments a
JOIN teachers t   ON t.teacher_id = a.teacher_id
JOIN courses c    ON c.course_id = a.course_id
JOIN grades g     ON g.grade_id = a.grade_id
JOIN sections sec ON sec.section_id = a.section_id
JOIN schedules sch ON sch.schedule_id = a.schedule_id
WHERE a.grade_id = $1 AND a.section_id = $2
ORDER BY sch.start_time, c.name`

func (r *ReportRepository) Roster(ctx context.Context, gradeID, sectionID uuid.UUID) ([]interfaces.RosterRow, error) {
	rows := []interfaces.RosterRow{}
	if err := r.db.SelectContext(ctx, &rows, rosterQuery, gradeID, sectionID); err != nil {
		return nil, err
	}
	return rows, nil
}

const transcriptQuery = `
SELECT n.note_id,
       s.name AS student_name,
       c.name AS course_name,
       t.name AS teacher_name,
       n.score,
       n.approved
FROM notes n
JOIN students s ON s.student_id = n.student_id
JOIN courses c  ON c.course_id = n.course_id
JOIN teachers t ON t.teacher_id = n.teacher_id
WHERE n.student_id = $1
ORDER BY c.name`

func (r *ReportRepository) Transcript(ctx context.Context, studentID uuid.UUID) ([]interfaces.TranscriptRow, error) {
	rows := []interfaces.TranscriptRow{}
	if err := r.db.SelectContext(ctx, &rows, transcriptQuery, studentID); err != nil {
		return nil, err
	}
	return rows, nil
}
