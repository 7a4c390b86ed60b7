package store

import (
	"context"
	"encoding/json"
	"fmt"

	"ahha/internal/tasks"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

// AsynqJobClient enqueues background tasks on Redis through asynq.
type AsynqJobClient struct {
	client *asynq.Client
}

var _ JobClient = (*AsynqJobClient)(nil)

// RedisOpt returns the asynq connection options shared by the client and the
// worker server.
func RedisOpt(addr, password string, db int) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: addr, Password: password, DB: db}
}

func NewAsynqJobClient(opt asynq.RedisClientOpt) (*AsynqJobClient, error) {
	if opt.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}
	return &AsynqJobClient{client: asynq.NewClient(opt)}, nil
}

func (jc *AsynqJobClient) Close() error {
	return jc.client.Close()
}

func (jc *AsynqJobClient) Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if jc.client == nil {
		return nil, fmt.Errorf("AsynqJobClient internal client is not initialized")
	}
	info, err := jc.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		log.WithError(err).WithField("task_type", task.Type()).Error("Failed to enqueue task")
		return nil, err
	}
	log.WithFields(log.Fields{
		"task_type": task.Type(),
		"task_id":   info.ID,
		"queue":     info.Queue,
	}).Debug("Task enqueued")
	return info, nil
}

// EnqueueTaggingJob schedules tag generation for a stored snippet.
func (jc *AsynqJobClient) EnqueueTaggingJob(ctx context.Context, snippetID string) error {
	task, err := NewTagSnippetTask(snippetID)
	if err != nil {
		return err
	}
	if _, err := jc.Enqueue(ctx, task, asynq.Queue(tasks.QueueTagging), asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("enqueue tagging job for snippet %s: %w", snippetID, err)
	}
	return nil
}

// NewTagSnippetTask builds the asynq task for tagging one snippet.
func NewTagSnippetTask(snippetID string) (*asynq.Task, error) {
	payload, err := json.Marshal(tasks.TagSnippetPayload{SnippetID: snippetID})
	if err != nil {
		return nil, fmt.Errorf("encode tagging payload: %w", err)
	}
	return asynq.NewTask(tasks.TypeTagSnippet, payload), nil
}
