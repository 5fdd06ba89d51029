package upload

import "time"

type UploadResponse struct {
	UploadID     string `json:"upload_id"`
	FileName     string `json:"file_name"`
	Status       string `json:"status"`
	TotalRows    int    `json:"total_rows"`
	InsertedRows int    `json:"inserted_rows"`
	FailedRows   int    `json:"failed_rows"`
	ErrorFileURL string `json:"error_file_url,omitempty"`
}

type UploadedFileResponse struct {
	UploadID     string    `json:"upload_id"`
	FileName     string    `json:"file_name"`
	Status       string    `json:"status"`
	TotalRows    int       `json:"total_rows"`
	InsertedRows int       `json:"inserted_rows"`
	FailedRows   int       `json:"failed_rows"`
	ErrorFileURL string    `json:"error_file_url,omitempty"`
	UploadedBy   string    `json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toUploadedFileResponse(f UploadedFile) UploadedFileResponse {
	return UploadedFileResponse{
		UploadID:     f.ID,
		FileName:     f.FileName,
		Status:       f.Status,
		TotalRows:    f.TotalRows,
		InsertedRows: f.InsertedRows,
		FailedRows:   f.FailedRows,
		ErrorFileURL: f.ErrorFileURL,
		UploadedBy:   f.UploadedBy,
		CreatedAt:    f.CreatedAt,
	}
}
