package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"petoverflow/internal/models"
)

// memStore backs the fake repositories used by the service tests. Everything
// lives in maps keyed by id; the err fields let a test simulate a ledger
// outage on a specific store.
type memStore struct {
	users     map[uint]models.User
	questions map[uint]models.Question
	answers   map[uint]models.Answer
	topics    map[uint][]string
	qVotes    map[uint]map[uint]models.VoteType
	aVotes    map[uint]map[uint]models.VoteType

	qVoteErr error
	aVoteErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[uint]models.User),
		questions: make(map[uint]models.Question),
		answers:   make(map[uint]models.Answer),
		topics:    make(map[uint][]string),
		qVotes:    make(map[uint]map[uint]models.VoteType),
		aVotes:    make(map[uint]map[uint]models.VoteType),
	}
}

func (m *memStore) addUser(id uint, username string) {
	m.users[id] = models.User{ID: id, Username: username}
}

func (m *memStore) addQuestion(id, authorID uint, topics ...string) {
	m.questions[id] = models.Question{ID: id, AuthorID: authorID}
	m.topics[id] = topics
}

func (m *memStore) addAnswer(id, questionID, authorID uint) {
	m.answers[id] = models.Answer{ID: id, QuestionID: questionID, AuthorID: authorID}
}

func (m *memStore) voteQuestion(questionID, voterID uint, t models.VoteType) {
	if m.qVotes[questionID] == nil {
		m.qVotes[questionID] = make(map[uint]models.VoteType)
	}
	m.qVotes[questionID][voterID] = t
}

func (m *memStore) voteAnswer(answerID, voterID uint, t models.VoteType) {
	if m.aVotes[answerID] == nil {
		m.aVotes[answerID] = make(map[uint]models.VoteType)
	}
	m.aVotes[answerID][voterID] = t
}

type fakeUsers struct{ s *memStore }

func (f fakeUsers) Create(_ context.Context, u *models.User) error {
	if u.ID == 0 {
		u.ID = uint(len(f.s.users) + 1)
	}
	f.s.users[u.ID] = *u
	return nil
}

func (f fakeUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (f fakeUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakeUsers) Update(_ context.Context, u *models.User) error {
	if _, ok := f.s.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.s.users[u.ID] = *u
	return nil
}

func (f fakeUsers) PhoneNumbersWantingSms(_ context.Context) ([]string, error) {
	var out []string
	for _, u := range f.s.users {
		if u.WantsSms && u.PhoneNumber != "" {
			out = append(out, u.PhoneNumber)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f fakeUsers) FindAll(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.s.users))
	for _, u := range f.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeQuestions struct{ s *memStore }

func (f fakeQuestions) Create(_ context.Context, q *models.Question, topics []string) error {
	if q.ID == 0 {
		q.ID = uint(len(f.s.questions) + 1)
	}
	f.s.questions[q.ID] = *q
	f.s.topics[q.ID] = topics
	return nil
}

func (f fakeQuestions) FindByID(_ context.Context, id uint) (*models.Question, error) {
	q, ok := f.s.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &q, nil
}

func (f fakeQuestions) FindAll(_ context.Context) ([]models.Question, error) {
	out := make([]models.Question, 0, len(f.s.questions))
	for _, q := range f.s.questions {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeQuestions) FindByAuthor(_ context.Context, authorID uint) ([]models.Question, error) {
	var out []models.Question
	for _, q := range f.s.questions {
		if q.AuthorID == authorID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeQuestions) FindByTopic(_ context.Context, topic string) ([]models.Question, error) {
	var out []models.Question
	for id, topics := range f.s.topics {
		for _, t := range topics {
			if t == topic {
				out = append(out, f.s.questions[id])
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeQuestions) AuthorOf(_ context.Context, questionID uint) (uint, error) {
	q, ok := f.s.questions[questionID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return q.AuthorID, nil
}

type fakeAnswers struct{ s *memStore }

func (f fakeAnswers) Create(_ context.Context, a *models.Answer) error {
	if a.ID == 0 {
		a.ID = uint(len(f.s.answers) + 1)
	}
	f.s.answers[a.ID] = *a
	return nil
}

func (f fakeAnswers) FindByID(_ context.Context, id uint) (*models.Answer, error) {
	a, ok := f.s.answers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (f fakeAnswers) FindByQuestion(_ context.Context, questionID uint) ([]models.Answer, error) {
	var out []models.Answer
	for _, a := range f.s.answers {
		if a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeAnswers) FindByAuthor(_ context.Context, authorID uint) ([]models.Answer, error) {
	var out []models.Answer
	for _, a := range f.s.answers {
		if a.AuthorID == authorID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeTopics struct{ s *memStore }

func (f fakeTopics) TopicsOf(_ context.Context, questionID uint) ([]string, error) {
	return f.s.topics[questionID], nil
}

func (f fakeTopics) FindAll(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, topics := range f.s.topics {
		for _, t := range topics {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakeQuestionVotes struct{ s *memStore }

func (f fakeQuestionVotes) Replace(_ context.Context, questionID, voterID uint, t models.VoteType) error {
	if f.s.qVoteErr != nil {
		return f.s.qVoteErr
	}
	f.s.voteQuestion(questionID, voterID, t)
	return nil
}

func (f fakeQuestionVotes) Remove(_ context.Context, questionID, voterID uint) error {
	if f.s.qVoteErr != nil {
		return f.s.qVoteErr
	}
	delete(f.s.qVotes[questionID], voterID)
	return nil
}

func (f fakeQuestionVotes) Votes(_ context.Context, questionID uint) ([]models.Vote, error) {
	if f.s.qVoteErr != nil {
		return nil, f.s.qVoteErr
	}
	return flatten(f.s.qVotes[questionID]), nil
}

type fakeAnswerVotes struct{ s *memStore }

func (f fakeAnswerVotes) Replace(_ context.Context, answerID, voterID uint, t models.VoteType) error {
	if f.s.aVoteErr != nil {
		return f.s.aVoteErr
	}
	f.s.voteAnswer(answerID, voterID, t)
	return nil
}

func (f fakeAnswerVotes) Remove(_ context.Context, answerID, voterID uint) error {
	if f.s.aVoteErr != nil {
		return f.s.aVoteErr
	}
	delete(f.s.aVotes[answerID], voterID)
	return nil
}

func (f fakeAnswerVotes) Votes(_ context.Context, answerID uint) ([]models.Vote, error) {
	if f.s.aVoteErr != nil {
		return nil, f.s.aVoteErr
	}
	return flatten(f.s.aVotes[answerID]), nil
}

func flatten(byVoter map[uint]models.VoteType) []models.Vote {
	out := make([]models.Vote, 0, len(byVoter))
	for voterID, t := range byVoter {
		out = append(out, models.Vote{VoterID: voterID, Type: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VoterID < out[j].VoterID })
	return out
}

func newRatingService(s *memStore) RatingService {
	return NewRatingService(
		fakeQuestions{s}, fakeAnswers{s}, fakeTopics{s},
		fakeQuestionVotes{s}, fakeAnswerVotes{s},
	)
}

func newVoteService(s *memStore) VoteService {
	return NewVoteService(
		fakeQuestions{s}, fakeAnswers{s},
		fakeQuestionVotes{s}, fakeAnswerVotes{s},
	)
}

type recordingPublisher struct {
	sent map[string]string
	err  error
}

func (p *recordingPublisher) PublishSms(_ context.Context, phoneNumber, message string) error {
	if p.err != nil {
		return p.err
	}
	if p.sent == nil {
		p.sent = make(map[string]string)
	}
	p.sent[phoneNumber] = message
	return nil
}

func newQuestionService(s *memStore, publisher SmsPublisher) QuestionService {
	if publisher == nil {
		publisher = &recordingPublisher{}
	}
	notifications := NewNotificationService(fakeUsers{s}, publisher, nil)
	return NewQuestionService(
		fakeQuestions{s}, fakeTopics{s}, fakeQuestionVotes{s},
		newRatingService(s), notifications, nil,
	)
}

func newAnswerService(s *memStore) AnswerService {
	return NewAnswerService(
		fakeQuestions{s}, fakeAnswers{s}, fakeAnswerVotes{s},
		newRatingService(s), nil,
	)
}

func newUserService(s *memStore) UserService {
	return NewUserService(fakeUsers{s}, newRatingService(s), "test-secret", nil)
}
