package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
)

func InitKafkaProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Partitioner = sarama.NewHashPartitioner
	config.Version = sarama.V2_0_0_0
	config.ClientID = "petoverflow"

	return sarama.NewSyncProducer(brokers, config)
}

// smsEvent is the wire format consumed by the SMS gateway worker.
type smsEvent struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
	SentAt      int64  `json:"sentAt"`
}

// SmsProducer publishes outbound SMS events, keyed by phone number so
// messages to one recipient stay ordered within a partition.
type SmsProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewSmsProducer(producer sarama.SyncProducer, topic string) *SmsProducer {
	return &SmsProducer{producer: producer, topic: topic}
}

func (p *SmsProducer) PublishSms(_ context.Context, phoneNumber, message string) error {
	payload, err := json.Marshal(smsEvent{
		PhoneNumber: phoneNumber,
		Message:     message,
		SentAt:      time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(phoneNumber),
		Value: sarama.ByteEncoder(payload),
	})
	return err
}

func (p *SmsProducer) Close() error {
	return p.producer.Close()
}
