package services

import (
	"context"
	"fmt"

	"github.com/liushuo/teamboard/backend/internal/models"
	"github.com/liushuo/teamboard/backend/pkg/logger"
	"gorm.io/gorm"
)

// TaskNotification carries the fields the task email templates render.
type TaskNotification struct {
	ProjectName string
	TaskTitle   string
	Description string
	Priority    string
	DueDate     string
	AssignedBy  string
}

// MemberNotification carries the fields the membership email renders.
type MemberNotification struct {
	ProjectName string
	Role        string
	AddedBy     string
}

// NotificationService hands notification jobs to the queue and, on the
// consuming side, renders and sends them through the email service.
type NotificationService struct {
	db           *gorm.DB
	queue        TaskQueue
	emailService *EmailService
}

func NewNotificationService(db *gorm.DB, queue TaskQueue) *NotificationService {
	return &NotificationService{
		db:           db,
		queue:        queue,
		emailService: NewEmailService(db),
	}
}

// NotifyTaskAssigned queues an assignment notification for the assignee.
// Assignment to oneself is silent.
func (s *NotificationService) NotifyTaskAssigned(task *models.Task, project *models.Project, actor *models.User) {
	if task.AssignedTo == 0 || (actor != nil && task.AssignedTo == actor.ID) {
		return
	}

	recipient := s.lookupEmail(task.AssignedTo)
	if recipient == "" {
		return
	}

	job := &NotificationTask{
		Kind:        "task_assigned",
		ProjectID:   project.ID,
		ProjectName: project.Name,
		TaskID:      task.ID,
		TaskTitle:   task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Recipient:   recipient,
	}
	if task.DueDate != nil {
		job.DueDate = task.DueDate.Format("2006-01-02")
	}
	if actor != nil {
		job.ActorName = actor.DisplayName()
	}

	if err := s.queue.Enqueue(job); err != nil {
		logger.Warnf("[Notification] Failed to enqueue task_assigned: %v", err)
	}
}

// NotifyTaskDue queues a due-date reminder for the assignee.
func (s *NotificationService) NotifyTaskDue(task *models.Task) {
	if task.AssignedTo == 0 {
		return
	}

	recipient := s.lookupEmail(task.AssignedTo)
	if recipient == "" {
		return
	}

	projectName := ""
	if task.Project != nil {
		projectName = task.Project.Name
	}

	job := &NotificationTask{
		Kind:        "task_due",
		ProjectID:   task.ProjectID,
		ProjectName: projectName,
		TaskID:      task.ID,
		TaskTitle:   task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Recipient:   recipient,
	}
	if task.DueDate != nil {
		job.DueDate = task.DueDate.Format("2006-01-02")
	}

	if err := s.queue.Enqueue(job); err != nil {
		logger.Warnf("[Notification] Failed to enqueue task_due: %v", err)
	}
}

// NotifyMemberAdded queues an enrollment notification for the new member.
func (s *NotificationService) NotifyMemberAdded(member *models.ProjectMember, project *models.Project, actor *models.User) {
	recipient := s.lookupEmail(member.UserID)
	if recipient == "" {
		return
	}

	job := &NotificationTask{
		Kind:        "member_added",
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Role:        member.Role,
		Recipient:   recipient,
	}
	if actor != nil {
		job.ActorName = actor.DisplayName()
	}

	if err := s.queue.Enqueue(job); err != nil {
		logger.Warnf("[Notification] Failed to enqueue member_added: %v", err)
	}
}

// Process dispatches a dequeued notification to the matching email
// template. Wired as the processor of both the sync queue and the worker.
func (s *NotificationService) Process(ctx context.Context, job *NotificationTask) error {
	switch job.Kind {
	case "task_assigned":
		return s.emailService.SendTaskAssigned(&TaskNotification{
			ProjectName: job.ProjectName,
			TaskTitle:   job.TaskTitle,
			Description: job.Description,
			Priority:    job.Priority,
			DueDate:     job.DueDate,
			AssignedBy:  job.ActorName,
		}, []string{job.Recipient})
	case "task_due":
		return s.emailService.SendDueReminder(&TaskNotification{
			ProjectName: job.ProjectName,
			TaskTitle:   job.TaskTitle,
			Description: job.Description,
			Priority:    job.Priority,
			DueDate:     job.DueDate,
		}, []string{job.Recipient})
	case "member_added":
		return s.emailService.SendMemberAdded(&MemberNotification{
			ProjectName: job.ProjectName,
			Role:        job.Role,
			AddedBy:     job.ActorName,
		}, []string{job.Recipient})
	default:
		return fmt.Errorf("unknown notification kind: %s", job.Kind)
	}
}

func (s *NotificationService) lookupEmail(userID uint) string {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		logger.Warnf("[Notification] Recipient %d not found: %v", userID, err)
		return ""
	}
	if !user.IsActive {
		return ""
	}
	return user.Email
}
