package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"lendvault/config"
	userRepo "lendvault/database/repository/user"
	"lendvault/models"
	"lendvault/services/crm"
	"lendvault/services/notification"
	"lendvault/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
)

// InitTaskWorker runs the async side-call worker in background. Tasks are
// single-attempt; a failed side call is logged and dropped.
func InitTaskWorker(users userRepo.UserRepository, crmClient crm.Client, push notification.PushService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCRMSyncContact, handleSyncContactTask(users, crmClient))
	mux.HandleFunc(tasks.TypeCRMTags, handleTagsTask(crmClient))
	mux.HandleFunc(tasks.TypeCRMAttachFile, handleAttachFileTask(crmClient))
	mux.HandleFunc(tasks.TypeNotifyPush, handlePushTask(push))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[TaskWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[TaskWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[TaskWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleSyncContactTask(users userRepo.UserRepository, crmClient crm.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.CRMContactTaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[CRMSyncHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		contactID, err := crmClient.UpsertContact(ctx, p.Contact)
		if err != nil {
			log.Printf("[CRMSyncHandler] ❌ Contact upsert failed for user %s: %v", p.UserID, err)
			return err
		}

		// Persist a newly assigned contact id so webhooks can match by id.
		if contactID != "" && contactID != p.Contact.ID && p.UserID != "" {
			if err := users.UpdateSetDocument(p.UserID, bson.M{"crm_contact_id": contactID}); err != nil {
				log.Printf("[CRMSyncHandler] ⚠️ Failed to store contact id for user %s: %v", p.UserID, err)
			}
		}
		return nil
	}
}

func handleTagsTask(crmClient crm.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.CRMTagsTaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[CRMTagsHandler] 🔴 Invalid payload: %v", err)
			return err
		}
		if p.ContactID == "" {
			log.Printf("[CRMTagsHandler] ⚠️ Dropping tag update without contact id")
			return nil
		}

		if len(p.AddTags) > 0 {
			if err := crmClient.AddTags(ctx, p.ContactID, p.AddTags); err != nil {
				log.Printf("[CRMTagsHandler] ❌ Failed to add tags on contact %s: %v", p.ContactID, err)
				return err
			}
		}
		if len(p.RemoveTags) > 0 {
			if err := crmClient.RemoveTags(ctx, p.ContactID, p.RemoveTags); err != nil {
				log.Printf("[CRMTagsHandler] ❌ Failed to remove tags on contact %s: %v", p.ContactID, err)
				return err
			}
		}
		return nil
	}
}

func handleAttachFileTask(crmClient crm.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.CRMFileTaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[CRMFileHandler] 🔴 Invalid payload: %v", err)
			return err
		}
		if p.ContactID == "" {
			log.Printf("[CRMFileHandler] ⚠️ Dropping file attach without contact id")
			return nil
		}

		if err := crmClient.AttachFile(ctx, p.ContactID, p.FileName, p.URL); err != nil {
			log.Printf("[CRMFileHandler] ❌ Failed to attach %s on contact %s: %v", p.FileName, p.ContactID, err)
			return err
		}
		return nil
	}
}

func handlePushTask(push notification.PushService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PushTaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[PushHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		if err := push.Send(ctx, p.Token, p.Title, p.Body); err != nil {
			log.Printf("[PushHandler] ❌ Failed to send notification: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[TaskWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
