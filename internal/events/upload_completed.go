package events

import "time"

const UploadCompletedTopic = "hr.allowance.upload.v1"

// UploadCompletedEvent dipublish setelah satu file spreadsheet selesai
// diproses, berapapun baris yang gagal
type UploadCompletedEvent struct {
	EventType    string    `json:"event_type"`
	UploadID     string    `json:"upload_id"`
	FileName     string    `json:"file_name"`
	Status       string    `json:"status"`
	RowsInserted int       `json:"rows_inserted"`
	RowsFailed   int       `json:"rows_failed"`
	ErrorFileURL string    `json:"error_file_url,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
