package export

// ExportRecordsRequest adalah query param endpoint export flat records
type ExportRecordsRequest struct {
	EmpID          string `form:"emp_id"`
	AccountManager string `form:"account_manager"`
	StartMonth     string `form:"start_month"`
	EndMonth       string `form:"end_month"`
	Department     string `form:"department"`
	Client         string `form:"client"`
}

// CachedExport adalah entry cache untuk file default latest-month
type CachedExport struct {
	CachedMonth string `json:"_cached_month"`
	FilePath    string `json:"file_path"`
}
