package initializers

import (
	"context"
	"recruit-flow-backend/config"
	"recruit-flow-backend/fiberlog"
	"recruit-flow-backend/lib/analytics"
	assessmenthandler "recruit-flow-backend/lib/assessment"
	assessmentexpireworker "recruit-flow-backend/lib/assessment/expire-worker"
	authhandler "recruit-flow-backend/lib/auth"
	candidatehandler "recruit-flow-backend/lib/candidate"
	candidatehistoryhandler "recruit-flow-backend/lib/candidate-history"
	xlsexport "recruit-flow-backend/lib/export/xls"
	filestorage "recruit-flow-backend/lib/file-storage"
	formhandler "recruit-flow-backend/lib/form"
	interviewhandler "recruit-flow-backend/lib/interview"
	notificationhandler "recruit-flow-backend/lib/notification"
	notificationdispatchworker "recruit-flow-backend/lib/notification/dispatch-worker"
	pushclient "recruit-flow-backend/lib/push"
	smsclient "recruit-flow-backend/lib/sms"
	"time"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	smsclient.NewProvider()
	pushclient.NewProvider()
	filestorage.NewHandler()
	candidatehistoryhandler.NewHandler()
	notificationhandler.NewHandler()
	authhandler.NewHandler()
	candidatehandler.NewHandler()
	formhandler.NewHandler()
	assessmenthandler.NewHandler()
	interviewhandler.NewHandler()
	xlsexport.NewHandler()
	analytics.NewHandler()
	go initWorkers(ctx)
}

// start with a gap between workers to spread the load
func initWorkers(ctx context.Context) {
	// outbox dispatch for email/sms/push
	notificationdispatchworker.StartWorker(ctx)

	if makeTimeGap(ctx) {
		// expire stale test invitations
		assessmentexpireworker.StartWorker(ctx)
	}
}

func makeTimeGap(ctx context.Context) (canRun bool) {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Second * 10):
		return true
	}
}
