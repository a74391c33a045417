package models

// TopicScore pairs a topic name with a derived score: the summed rating of
// the topic's questions in listings, or a user's accumulated answer ratings
// in expertise lists.
type TopicScore struct {
	Topic  string  `json:"topic"`
	Rating float64 `json:"rating"`
}
