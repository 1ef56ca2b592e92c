package api

import "github.com/iudanet/qaforum/internal/models"

// VoteRequest тело запроса POST /api/v1/{questions|answers}/{id}/vote
type VoteRequest struct {
	VoteType string `json:"vote_type"` // "upvote" или "downvote"
}

// VoteResponse ответ на голос. Сервер может вернуть только {"message": ...};
// отсутствующее поле (nil) не является состоянием сервера.
type VoteResponse struct {
	VoteCount *int              `json:"vote_count,omitempty"`
	UserVote  *models.VoteState `json:"user_vote,omitempty"`
}

// HasState reports whether the response carries any server-side vote state
func (r *VoteResponse) HasState() bool {
	return r != nil && (r.VoteCount != nil || r.UserVote != nil)
}

// VotableResponse - поля вопроса или ответа, нужные клиенту для голосования
type VotableResponse struct {
	QuestionID string           `json:"question_id,omitempty"`
	AnswerID   string           `json:"answer_id,omitempty"`
	Title      string           `json:"title,omitempty"`
	VoteCount  int              `json:"vote_count"`
	UserVote   models.VoteState `json:"user_vote"`
}
