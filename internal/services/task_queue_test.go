package services

import (
	"context"
	"testing"
	"time"
)

func TestTaskTypeNotification_Constant(t *testing.T) {
	if TaskTypeNotification != "notification:send" {
		t.Errorf("TaskTypeNotification = %q, expected %q", TaskTypeNotification, "notification:send")
	}
}

func TestSyncQueue_DeliversToProcessor(t *testing.T) {
	queue := NewSyncQueue()

	if queue.IsAsync() {
		t.Error("sync queue should report IsAsync() = false")
	}

	received := make(chan *NotificationTask, 1)
	queue.SetProcessor(func(ctx context.Context, task *NotificationTask) error {
		received <- task
		return nil
	})

	job := &NotificationTask{
		Kind:        "task_assigned",
		ProjectID:   1,
		ProjectName: "Website Redesign",
		TaskID:      7,
		TaskTitle:   "Update landing page",
		Recipient:   "dev@example.com",
	}
	if err := queue.Enqueue(job); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	select {
	case got := <-received:
		if got.Kind != "task_assigned" {
			t.Errorf("Kind = %q, expected %q", got.Kind, "task_assigned")
		}
		if got.Recipient != "dev@example.com" {
			t.Errorf("Recipient = %q, expected %q", got.Recipient, "dev@example.com")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("processor was never called")
	}
}

func TestSyncQueue_NoProcessorDropsTask(t *testing.T) {
	queue := NewSyncQueue()

	// Without a processor the task is dropped, not an error.
	if err := queue.Enqueue(&NotificationTask{Kind: "task_due"}); err != nil {
		t.Errorf("Enqueue without processor: %v", err)
	}
	if err := queue.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
