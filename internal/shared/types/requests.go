package types

// PositionRequest carries a drop coordinate for a window or an icon.
type PositionRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

// OpenRequest says where an open gesture came from.
type OpenRequest struct {
	Source string `json:"source"`
}

// SaveDocumentRequest writes a document into Documents.
type SaveDocumentRequest struct {
	Name    string `json:"name" binding:"required"`
	Content string `json:"content"`
}
