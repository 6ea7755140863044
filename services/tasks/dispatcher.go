package tasks

import (
	"lendvault/models"
	"lendvault/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Dispatcher enqueues background side calls. Failures are logged, never
// surfaced to the request path.
type Dispatcher interface {
	SyncContact(payload models.CRMContactTaskPayload)
	PushTags(payload models.CRMTagsTaskPayload)
	AttachFile(payload models.CRMFileTaskPayload)
	Push(payload models.PushTaskPayload)
}

// AsynqDispatcher is the Redis-backed production dispatcher.
type AsynqDispatcher struct {
	Client *asynq.Client
}

// NewAsynqDispatcher creates a dispatcher over the given Redis queue options.
func NewAsynqDispatcher(opts asynq.RedisClientOpt) *AsynqDispatcher {
	return &AsynqDispatcher{Client: asynq.NewClient(opts)}
}

func (d *AsynqDispatcher) enqueue(task *asynq.Task, opts []asynq.Option, err error) {
	if err != nil {
		utils.GetLogger().Error("Failed to build task", zap.Error(err))
		return
	}
	if d.Client == nil {
		utils.GetLogger().Warn("Task dispatcher has no queue client; dropping task",
			zap.String("type", task.Type()))
		return
	}
	if _, err := d.Client.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Error("Failed to enqueue task",
			zap.String("type", task.Type()), zap.Error(err))
	}
}

func (d *AsynqDispatcher) SyncContact(payload models.CRMContactTaskPayload) {
	task, opts, err := NewCRMSyncContactTask(payload)
	d.enqueue(task, opts, err)
}

func (d *AsynqDispatcher) PushTags(payload models.CRMTagsTaskPayload) {
	task, opts, err := NewCRMTagsTask(payload)
	d.enqueue(task, opts, err)
}

func (d *AsynqDispatcher) AttachFile(payload models.CRMFileTaskPayload) {
	task, opts, err := NewCRMAttachFileTask(payload)
	d.enqueue(task, opts, err)
}

func (d *AsynqDispatcher) Push(payload models.PushTaskPayload) {
	task, opts, err := NewNotifyPushTask(payload)
	d.enqueue(task, opts, err)
}
