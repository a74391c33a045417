package service

import (
	"context"
	"fmt"
	"sort"

	"petoverflow/internal/models"
	"petoverflow/internal/repository"
)

// Weights for derived ratings. A question's own votes count for a fifth of
// its rating; the quality of its answers carries the rest. The same split
// applies to a user's questions versus answers.
const (
	ownWeight       = 0.2
	delegatedWeight = 0.8
)

// RatingService derives every score in the system from the two vote ledgers.
// Nothing here is stored; ratings are recomputed from votes on each call.
type RatingService interface {
	AnswerRating(ctx context.Context, answerID uint) (float64, error)
	QuestionRating(ctx context.Context, questionID uint) (float64, error)
	QuestionVoteCount(ctx context.Context, questionID uint) (float64, error)
	UserRating(ctx context.Context, userID uint) (float64, error)
	TopicRating(ctx context.Context, topic string) (float64, error)
	BestAnswer(ctx context.Context, questionID uint) (uint, bool, error)
	BestTopics(ctx context.Context, userID uint, limit int) ([]models.TopicScore, error)
}

type ratingService struct {
	questions     repository.QuestionRepository
	answers       repository.AnswerRepository
	topics        repository.TopicRepository
	questionVotes repository.QuestionVoteRepository
	answerVotes   repository.AnswerVoteRepository
}

func NewRatingService(
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	topics repository.TopicRepository,
	questionVotes repository.QuestionVoteRepository,
	answerVotes repository.AnswerVoteRepository,
) RatingService {
	return &ratingService{
		questions:     questions,
		answers:       answers,
		topics:        topics,
		questionVotes: questionVotes,
		answerVotes:   answerVotes,
	}
}

func tally(votes []models.Vote) float64 {
	var sum float64
	for _, v := range votes {
		sum += v.Type.Score()
	}
	return sum
}

// AnswerRating is the signed tally of the answer's votes: upvotes minus
// downvotes.
func (s *ratingService) AnswerRating(ctx context.Context, answerID uint) (float64, error) {
	votes, err := s.answerVotes.Votes(ctx, answerID)
	if err != nil {
		return 0, ledgerErr(err)
	}
	return tally(votes), nil
}

// QuestionVoteCount is the signed tally of the question's own votes. It is
// deliberately distinct from QuestionRating; callers that want "how the
// question itself was received" must use this, not the blended rating.
func (s *ratingService) QuestionVoteCount(ctx context.Context, questionID uint) (float64, error) {
	votes, err := s.questionVotes.Votes(ctx, questionID)
	if err != nil {
		return 0, ledgerErr(err)
	}
	return tally(votes), nil
}

// QuestionRating blends the question's own vote tally with the mean rating of
// its answers. A question with no answers takes 0 for the answer component.
func (s *ratingService) QuestionRating(ctx context.Context, questionID uint) (float64, error) {
	own, err := s.QuestionVoteCount(ctx, questionID)
	if err != nil {
		return 0, err
	}

	answers, err := s.answers.FindByQuestion(ctx, questionID)
	if err != nil {
		return 0, fmt.Errorf("loading answers for question %d: %w", questionID, err)
	}

	var answerMean float64
	if len(answers) > 0 {
		var sum float64
		for _, a := range answers {
			r, err := s.AnswerRating(ctx, a.ID)
			if err != nil {
				return 0, err
			}
			sum += r
		}
		answerMean = sum / float64(len(answers))
	}
	return ownWeight*own + delegatedWeight*answerMean, nil
}

// UserRating blends the mean rating of the user's questions with the mean
// rating of their answers. An empty set on either side contributes 0 rather
// than poisoning the result.
func (s *ratingService) UserRating(ctx context.Context, userID uint) (float64, error) {
	questions, err := s.questions.FindByAuthor(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("loading questions for user %d: %w", userID, err)
	}
	var questionMean float64
	if len(questions) > 0 {
		var sum float64
		for _, q := range questions {
			r, err := s.QuestionRating(ctx, q.ID)
			if err != nil {
				return 0, err
			}
			sum += r
		}
		questionMean = sum / float64(len(questions))
	}

	answers, err := s.answers.FindByAuthor(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("loading answers for user %d: %w", userID, err)
	}
	var answerMean float64
	if len(answers) > 0 {
		var sum float64
		for _, a := range answers {
			r, err := s.AnswerRating(ctx, a.ID)
			if err != nil {
				return 0, err
			}
			sum += r
		}
		answerMean = sum / float64(len(answers))
	}

	return ownWeight*questionMean + delegatedWeight*answerMean, nil
}

// TopicRating sums the ratings of every question tagged with the topic. A sum,
// not an average: a topic with many well-rated questions outranks a topic with
// one brilliant question.
func (s *ratingService) TopicRating(ctx context.Context, topic string) (float64, error) {
	questions, err := s.questions.FindByTopic(ctx, topic)
	if err != nil {
		return 0, fmt.Errorf("loading questions for topic %q: %w", topic, err)
	}
	var sum float64
	for _, q := range questions {
		r, err := s.QuestionRating(ctx, q.ID)
		if err != nil {
			return 0, err
		}
		sum += r
	}
	return sum, nil
}

// BestAnswer returns the id of the highest-rated answer to the question. Ties
// go to the earliest answer (lowest id). The second return is false when the
// question has no answers.
func (s *ratingService) BestAnswer(ctx context.Context, questionID uint) (uint, bool, error) {
	answers, err := s.answers.FindByQuestion(ctx, questionID)
	if err != nil {
		return 0, false, fmt.Errorf("loading answers for question %d: %w", questionID, err)
	}
	if len(answers) == 0 {
		return 0, false, nil
	}

	// FindByQuestion orders by id, so keeping only strict improvements
	// leaves the lowest-id answer among equals.
	bestID := answers[0].ID
	bestRating, err := s.AnswerRating(ctx, answers[0].ID)
	if err != nil {
		return 0, false, err
	}
	for _, a := range answers[1:] {
		r, err := s.AnswerRating(ctx, a.ID)
		if err != nil {
			return 0, false, err
		}
		if r > bestRating {
			bestID, bestRating = a.ID, r
		}
	}
	return bestID, true, nil
}

// BestTopics ranks the topics a user has answered in by the summed ratings of
// their answers there. An answer tagged with several topics counts once per
// topic. Ties order alphabetically; at most limit entries come back.
func (s *ratingService) BestTopics(ctx context.Context, userID uint, limit int) ([]models.TopicScore, error) {
	answers, err := s.answers.FindByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading answers for user %d: %w", userID, err)
	}

	scores := make(map[string]float64)
	for _, a := range answers {
		r, err := s.AnswerRating(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		topics, err := s.topics.TopicsOf(ctx, a.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("loading topics for question %d: %w", a.QuestionID, err)
		}
		for _, t := range topics {
			scores[t] += r
		}
	}

	ranked := make([]models.TopicScore, 0, len(scores))
	for topic, rating := range scores {
		ranked = append(ranked, models.TopicScore{Topic: topic, Rating: rating})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].Topic < ranked[j].Topic
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
