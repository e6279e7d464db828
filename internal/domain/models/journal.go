package models

import "time"

// FormKind identifies which editing surface produced a submission.
type FormKind string

const (
	FormQualityCheck     FormKind = "quality_check"
	FormProductionOutput FormKind = "production_output"
)

// Submission outcomes recorded in the journal.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// SubmissionRecord is one journaled submit attempt.
type SubmissionRecord struct {
	Form           FormKind  `bson:"form" json:"form"`
	SessionID      string    `bson:"session_id" json:"session_id"`
	IdempotencyKey string    `bson:"idempotency_key" json:"idempotency_key"`
	Outcome        string    `bson:"outcome" json:"outcome"`
	Message        string    `bson:"message" json:"message"`
	RecordID       string    `bson:"record_id,omitempty" json:"record_id,omitempty"`
	PersistedRows  []string  `bson:"persisted_rows,omitempty" json:"persisted_rows,omitempty"`
	FailedRows     []string  `bson:"failed_rows,omitempty" json:"failed_rows,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// QualitySummary aggregates the quality register over a period.
type QualitySummary struct {
	From              time.Time `bson:"from" json:"from"`
	To                time.Time `bson:"to" json:"to"`
	Inspections       int       `bson:"inspections" json:"inspections"`
	Accepted          int       `bson:"accepted" json:"accepted"`
	Quarantine        int       `bson:"quarantine" json:"quarantine"`
	Rejected          int       `bson:"rejected" json:"rejected"`
	ParameterPasses   int       `bson:"parameter_passes" json:"parameter_passes"`
	ParameterFailures int       `bson:"parameter_failures" json:"parameter_failures"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
}
