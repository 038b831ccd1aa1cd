// Command devapi serves the EduConnect teacher endpoints from memory, for working on the dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	echoapi "github.com/trezcool/educonnect/apps/devapi/echo"
	"github.com/trezcool/educonnect/apps/shared"
	"github.com/trezcool/educonnect/core"
	logsvc "github.com/trezcool/educonnect/services/logger"
	sessionsvc "github.com/trezcool/educonnect/services/session"
	inmemdb "github.com/trezcool/educonnect/storage/inmem"
)

func main() {
	saveSession := flag.Bool("save-session", false, "write the dev token to the dashboard session file")
	flag.Parse()

	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DEVAPI : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	teacher := echoapi.Teacher{ID: "demo-teacher", Name: "Demo Teacher", Email: "teacher@educonnect.local"}
	db := inmemdb.Open()
	if err := db.Seed(teacher.ID); err != nil {
		logger.Fatal(fmt.Sprintf("seeding database: %v", err), err)
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	token, err := echoapi.GenerateToken(conf, teacher)
	if err != nil {
		logger.Fatal(fmt.Sprintf("generating dev token: %v", err), err)
	}
	logger.Info(fmt.Sprintf("dev token for %s: %s", teacher.Email, token))

	if *saveSession {
		store := sessionsvc.NewFileStore(conf.Session.File)
		cred := core.Credential{Token: token, UserID: teacher.ID, Name: teacher.Name, Email: teacher.Email}
		if err = store.Save(cred); err != nil {
			logger.Fatal(fmt.Sprintf("saving session: %v", err), err)
		}
		logger.Info("session saved to " + conf.Session.File)
	}

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:      conf,
			Logger:    logger,
			DB:        db,
			Validator: shared.NewValidator(),
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.DevAPI.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
