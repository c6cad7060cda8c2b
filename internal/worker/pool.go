package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"gert-backend/internal/models"
	"gert-backend/internal/repository"
	"gert-backend/internal/services"
)

// Pool delivers finished reports: it renders both report views and sends
// the notification emails. Delivery is at-most-once; a failed job is
// logged and dropped, never re-queued. The stored result row is the
// source of truth either way, so a lost email only costs the
// notification.
type Pool struct {
	redis         *redis.Client
	email         *services.EmailService
	reportService *services.ReportService
	sessionRepo   *repository.SessionRepo
	clientRepo    *repository.ClientRepo
	reportBaseURL string
	workerCount   int
	stopChan      chan struct{}
}

func NewPool(
	redisClient *redis.Client,
	email *services.EmailService,
	reportService *services.ReportService,
	sessionRepo *repository.SessionRepo,
	clientRepo *repository.ClientRepo,
	reportBaseURL string,
	workerCount int,
) *Pool {
	return &Pool{
		redis:         redisClient,
		email:         email,
		reportService: reportService,
		sessionRepo:   sessionRepo,
		clientRepo:    clientRepo,
		reportBaseURL: reportBaseURL,
		workerCount:   workerCount,
		stopChan:      make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}

	log.Printf("Started %d report delivery workers", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout
		result, err := p.redis.BLPop(ctx, 30*time.Second, services.ReportQueueKey).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		var job models.ReportJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("Worker %d: failed to parse report job: %v", id, err)
			continue
		}

		// Try to acquire lock
		lockKey := fmt.Sprintf("report_lock:%s", job.ReportToken)
		locked, err := p.redis.SetNX(ctx, lockKey, "1", 10*time.Minute).Result()
		if err != nil || !locked {
			continue // Another worker has this job
		}

		log.Printf("Worker %d: delivering report %s (session %d)", id, job.ReportToken, job.SessionID)

		if err := p.deliver(ctx, &job); err != nil {
			// At most once: log and drop
			log.Printf("Worker %d: report %s delivery failed, dropping: %v", id, job.ReportToken, err)
		}

		p.redis.Del(ctx, lockKey)
	}
}

func (p *Pool) deliver(ctx context.Context, job *models.ReportJob) error {
	// Render both views up front so a broken report fails before any
	// email goes out.
	if _, err := p.reportService.Render(job.ReportData, services.ReportKindRespondent); err != nil {
		return err
	}
	if _, err := p.reportService.Render(job.ReportData, services.ReportKindClient); err != nil {
		return err
	}

	respondentURL := fmt.Sprintf("%s/%s/%s", p.reportBaseURL, job.ReportToken, services.ReportKindRespondent)
	clientURL := fmt.Sprintf("%s/%s/%s", p.reportBaseURL, job.ReportToken, services.ReportKindClient)

	if job.CandidateEmail != nil && *job.CandidateEmail != "" {
		if err := p.email.SendReportEmail(*job.CandidateEmail, respondentURL, services.ReportKindRespondent); err != nil {
			return err
		}
	}

	client, err := p.clientRepo.GetByID(ctx, job.ClientID)
	if err != nil {
		return fmt.Errorf("failed to load client %d: %w", job.ClientID, err)
	}
	if client.ContactEmail != "" {
		if err := p.email.SendReportEmail(client.ContactEmail, clientURL, services.ReportKindClient); err != nil {
			return err
		}
	}

	p.publishReady(ctx, job)
	return nil
}

// publishReady pushes a report_ready event onto the client company's
// websocket channel. Best-effort.
func (p *Pool) publishReady(ctx context.Context, job *models.ReportJob) {
	session, err := p.sessionRepo.GetByID(ctx, job.SessionID)
	if err != nil {
		log.Printf("failed to load session %d for report_ready event: %v", job.SessionID, err)
		return
	}

	msg := models.WSMessage{
		Type: "report_ready",
		Payload: models.ReportReadyEvent{
			SessionToken: session.Token,
			ReportToken:  job.ReportToken,
		},
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	channel := fmt.Sprintf("ws:client:%d", job.ClientID)
	if err := p.redis.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("failed to publish report_ready for session %d: %v", job.SessionID, err)
	}
}
