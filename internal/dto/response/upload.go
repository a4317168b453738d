package response

type UploadResponse struct {
	FileURL string `json:"fileUrl"`
}
