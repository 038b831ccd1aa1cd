// Command educonnect is the teacher dashboard in a terminal.
package main

import (
	"log"
	"os"

	"golang.org/x/term"

	"github.com/trezcool/educonnect/apps/shared"
	"github.com/trezcool/educonnect/core"
	apisvc "github.com/trezcool/educonnect/services/api"
	emailsvc "github.com/trezcool/educonnect/services/email"
	logsvc "github.com/trezcool/educonnect/services/logger"
	sessionsvc "github.com/trezcool/educonnect/services/session"
)

func main() {
	conf := core.NewConfig()

	std := log.New(os.Stderr, "DASHBOARD : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)

	if err := core.ParseEmailTemplates(); err != nil {
		logger.Fatal(err.Error(), err)
	}
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, std)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	// start CLI
	cli := commandLine{
		conf:      conf,
		out:       os.Stdout,
		color:     term.IsTerminal(int(os.Stdout.Fd())),
		logger:    logger,
		client:    apisvc.NewClient(conf, logger),
		store:     sessionsvc.NewStore(conf),
		mailSvc:   mailSvc,
		validator: shared.NewValidator(),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("error: %s\n", err)
		}
		os.Exit(1)
	}
}
