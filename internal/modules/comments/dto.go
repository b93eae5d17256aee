package comments

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,max=250"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required,max=250"`
}
