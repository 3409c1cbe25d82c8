package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateMarshalsParsedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	name := "John Doe"
	now := time.Now().UTC()
	resume := Resume{
		ID:               "resume-1",
		OriginalFilename: "resume.pdf",
		FileType:         "pdf",
		MimeType:         "application/pdf",
		SizeBytes:        1024,
		StorageKey:       "resumes/abc/resume.pdf",
		Checksum:         "deadbeef",
		ExtractedText:    "John Doe\nEngineer",
		Parsed:           true,
		ParsedFields:     &ResumeFields{FullName: &name},
		UploadedAt:       now,
		UpdatedAt:        now,
	}

	wantJSON, _ := json.Marshal(resume.ParsedFields)

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			resume.ID,
			resume.OriginalFilename,
			resume.FileType,
			sql.NullString{String: resume.MimeType, Valid: true},
			resume.SizeBytes,
			sql.NullString{String: resume.StorageKey, Valid: true},
			sql.NullString{String: resume.Checksum, Valid: true},
			sql.NullString{String: resume.ExtractedText, Valid: true},
			true,
			wantJSON,
			resume.UploadedAt,
			resume.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDDecodesParsedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	fieldsJSON := []byte(`{"fullName":"John Doe","skills":["Go","SQL"]}`)

	rows := sqlmock.NewRows([]string{
		"id", "original_filename", "file_type", "mime_type", "size_bytes",
		"storage_key", "checksum", "extracted_text", "parsed", "parsed_fields",
		"uploaded_at", "updated_at",
	}).AddRow("resume-1", "resume.pdf", "pdf", nil, int64(1024), nil, nil, "text", true, fieldsJSON, now, now)

	mock.ExpectQuery("SELECT (.+) FROM resumes").
		WithArgs("resume-1").
		WillReturnRows(rows)

	resume, err := repo.GetByID(context.Background(), "resume-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if resume.ParsedFields == nil || resume.ParsedFields.FullName == nil || *resume.ParsedFields.FullName != "John Doe" {
		t.Errorf("parsed fields = %+v", resume.ParsedFields)
	}
	if len(resume.ParsedFields.Skills) != 2 {
		t.Errorf("skills = %v", resume.ParsedFields.Skills)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateParseNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE resumes").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateParse(context.Background(), "missing", nil, false, time.Now().UTC())
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
