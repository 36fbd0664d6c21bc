package queue

import (
	"database/sql"
	"errors"
	"time"
)

const itemColumns = "id, base, source_path, diarized_path, status, source_transcript_path, diarized_transcript_path, cut_seconds, diarized_cut_seconds, warnings, trimmed_path, diarized_trimmed_path, error_message, progress_stage, progress_percent, progress_message, needs_review, review_reason, created_at, updated_at"

func scanItem(scanner interface{ Scan(dest ...any) error }) (*Item, error) {
	var (
		id                 int64
		base               string
		sourcePath         string
		diarizedPath       sql.NullString
		statusStr          string
		sourceTranscript   sql.NullString
		diarizedTranscript sql.NullString
		cutSeconds         sql.NullFloat64
		diarizedCutSeconds sql.NullFloat64
		warnings           sql.NullString
		trimmedPath        sql.NullString
		diarizedTrimmed    sql.NullString
		errorMessage       sql.NullString
		progressStage      sql.NullString
		progressPercent    sql.NullFloat64
		progressMessage    sql.NullString
		needsReview        sql.NullInt64
		reviewReason       sql.NullString
		createdRaw         sql.NullString
		updatedRaw         sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&base,
		&sourcePath,
		&diarizedPath,
		&statusStr,
		&sourceTranscript,
		&diarizedTranscript,
		&cutSeconds,
		&diarizedCutSeconds,
		&warnings,
		&trimmedPath,
		&diarizedTrimmed,
		&errorMessage,
		&progressStage,
		&progressPercent,
		&progressMessage,
		&needsReview,
		&reviewReason,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	item := &Item{
		ID:                     id,
		Base:                   base,
		SourcePath:             sourcePath,
		DiarizedPath:           diarizedPath.String,
		Status:                 Status(statusStr),
		SourceTranscriptPath:   sourceTranscript.String,
		DiarizedTranscriptPath: diarizedTranscript.String,
		CutSeconds:             cutSeconds.Float64,
		DiarizedCutSeconds:     diarizedCutSeconds.Float64,
		Warnings:               warnings.String,
		TrimmedPath:            trimmedPath.String,
		DiarizedTrimmedPath:    diarizedTrimmed.String,
		ErrorMessage:           errorMessage.String,
		ProgressStage:          progressStage.String,
		ProgressPercent:        progressPercent.Float64,
		ProgressMessage:        progressMessage.String,
		ReviewReason:           reviewReason.String,
	}
	if needsReview.Valid {
		item.NeedsReview = needsReview.Int64 != 0
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		item.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		item.UpdatedAt = updated
	}
	return item, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
