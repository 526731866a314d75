package campaign

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
)

// GenerateQuizHash hashes the correct answer indices, in question order, as
// the hex sha256 of their JSON array encoding.
func GenerateQuizHash(answerIndices []int) string {
	if answerIndices == nil {
		answerIndices = []int{}
	}

	// Marshalling an int slice cannot fail.
	encoded, _ := json.Marshal(answerIndices)
	hash := sha256.Sum256(encoded)
	return hex.EncodeToString(hash[:])
}

// VerifyQuiz reports whether answers match the published hash.
func VerifyQuiz(answerIndices []int, storedHash string) bool {
	actual := GenerateQuizHash(answerIndices)
	return subtle.ConstantTimeCompare([]byte(actual), []byte(storedHash)) == 1
}

// Verify checks answers against the quiz's published hash.
func (q *Quiz) Verify(answerIndices []int) bool {
	if q == nil || len(q.CorrectAnswerHash) == 0 {
		return false
	}
	return VerifyQuiz(answerIndices, q.CorrectAnswerHash)
}

// Seal computes the correct answer hash from the questions' answer indices.
func (q *Quiz) Seal() {
	indices := make([]int, len(q.Questions))
	for i, question := range q.Questions {
		indices[i] = question.CorrectAnswerIndex
	}
	q.CorrectAnswerHash = GenerateQuizHash(indices)
}
