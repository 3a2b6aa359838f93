package model

type ProcessRequest struct {
	Image    string `json:"image"`
	Filename string `json:"filename"`
	MimeType string `json:"mimetype"`
}

type Timing struct {
	UploadMs     int64 `json:"uploadMs"`
	ProcessingMs int64 `json:"processingMs"`
	TotalMs      int64 `json:"totalMs"`
}

type ProcessResult struct {
	Success     bool   `json:"success"`
	Result      string `json:"result"`
	UploadedURL string `json:"uploadedUrl"`
	Timestamp   string `json:"timestamp"`
	Timing      Timing `json:"timing"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type DownloadRequest struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type DownloadResult struct {
	Filename      string
	ContentType   string
	ContentLength int64

	Body []byte
}

type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    int64  `json:"uptime"`
}
