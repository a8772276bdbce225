package echo

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type FileRef struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

type UploadResponse struct {
	Message string  `json:"message"`
	File    FileRef `json:"file"`
}

// FileEntry is one listed object. URL is reserved for signed access links
// and is always empty for now.
type FileEntry struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	URL  string `json:"url"`
}

type ListResponse struct {
	Files []FileEntry `json:"files"`
}

type DataResponse struct {
	Message string        `json:"message"`
	Data    []interface{} `json:"data"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
