package tasks

import (
	"encoding/json"

	"lendvault/models"

	"github.com/hibiken/asynq"
)

// Task types consumed by the CRM sync worker.
const (
	TypeCRMSyncContact = "crm:sync_contact"
	TypeCRMTags        = "crm:tags"
	TypeCRMAttachFile  = "crm:attach_file"
	TypeNotifyPush     = "notify:push"
)

// CRM side calls are best-effort: one attempt, no retry, no backoff.
var fireAndForget = []asynq.Option{asynq.MaxRetry(0)}

func NewCRMSyncContactTask(payload models.CRMContactTaskPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	return asynq.NewTask(TypeCRMSyncContact, b), fireAndForget, nil
}

func NewCRMTagsTask(payload models.CRMTagsTaskPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	return asynq.NewTask(TypeCRMTags, b), fireAndForget, nil
}

func NewCRMAttachFileTask(payload models.CRMFileTaskPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	return asynq.NewTask(TypeCRMAttachFile, b), fireAndForget, nil
}

func NewNotifyPushTask(payload models.PushTaskPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	return asynq.NewTask(TypeNotifyPush, b), fireAndForget, nil
}
