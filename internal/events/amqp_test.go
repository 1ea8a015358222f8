package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"

	"quiz-service/internal/quiz"
	"quiz-service/internal/testutil"
)

func TestAMQPPublisherRoutesByEventType(t *testing.T) {
	ctx := context.Background()
	url := testutil.StartRabbit(ctx, t)

	publisher, err := NewAMQPPublisher(url, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = publisher.Close() })
	require.Equal(t, DefaultExchange, publisher.Exchange())

	conn, err := amqp.Dial(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	ch, err := conn.Channel()
	require.NoError(t, err)

	queue, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(queue.Name, "answer.*", DefaultExchange, false, nil))

	msgs, err := ch.Consume(queue.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	// Not bound, must not arrive.
	require.NoError(t, publisher.Publish(ctx, quiz.Event{Type: quiz.EventQuizCreated, QuizID: "quiz-1", OccurredAt: time.Now()}))

	isCorrect := true
	require.NoError(t, publisher.Publish(ctx, quiz.Event{
		Type:       quiz.EventAnswerRecorded,
		QuizID:     "quiz-1",
		UserID:     "u1",
		QuestionID: "q1",
		IsCorrect:  &isCorrect,
		OccurredAt: time.Now(),
	}))

	select {
	case msg := <-msgs:
		require.Equal(t, quiz.EventAnswerRecorded, msg.RoutingKey)
		require.Equal(t, "application/json", msg.ContentType)

		var event quiz.Event
		require.NoError(t, json.Unmarshal(msg.Body, &event))
		require.Equal(t, "q1", event.QuestionID)
		require.NotNil(t, event.IsCorrect)
		require.True(t, *event.IsCorrect)
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for answer.recorded message")
	}
}
