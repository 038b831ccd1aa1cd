package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/trezcool/educonnect/core"
	"github.com/trezcool/educonnect/core/class"
	"github.com/trezcool/educonnect/core/extension"
	"github.com/trezcool/educonnect/core/feewaiver"
	"github.com/trezcool/educonnect/core/material"
	"github.com/trezcool/educonnect/core/notify"
	"github.com/trezcool/educonnect/core/submit"
	"github.com/trezcool/educonnect/core/waitlist"
	sessionsvc "github.com/trezcool/educonnect/services/session"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf      *core.Config
	out       io.Writer
	color     bool
	logger    core.Logger
	client    core.APIClient
	store     core.CredentialStore
	mailSvc   core.EmailService
	validator *core.Validator
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  classes                                                - list your classes")
	fmt.Fprintln(cli.out, "  create-class -subject S -fee F [-description D] [-cover PATH]")
	fmt.Fprintln(cli.out, "  update-class -id ID -subject S -fee F [-description D] [-cover PATH]")
	fmt.Fprintln(cli.out, "  delete-class -id ID")
	fmt.Fprintln(cli.out, "  upload-material -class ID -title T -lesson L -type pdf|video|link (-file PATH | -content URL) [-date YYYY-MM-DD]")
	fmt.Fprintln(cli.out, "  fee-waivers                                            - list fee waiver requests")
	fmt.Fprintln(cli.out, "  fee-waiver -id ID -status Approved|Rejected [-comments C] [-discount N]")
	fmt.Fprintln(cli.out, "  extensions [-status all|pending|approved|rejected] [-sort asc|desc]")
	fmt.Fprintln(cli.out, "  extension -material ID -request ID -status approved|rejected")
	fmt.Fprintln(cli.out, "  waitlist -email EMAIL                                  - join the launch waitlist")
	fmt.Fprintln(cli.out, "  countdown [-once]                                      - time left before launch")
	fmt.Fprintln(cli.out, "Every command accepts -ask-token to type a token instead of using the saved session.")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	newCmd := func(name string) (*flag.FlagSet, *bool) {
		cmd := flag.NewFlagSet(name, flag.ContinueOnError)
		cmd.SetOutput(cli.out)
		return cmd, cmd.Bool("ask-token", false, "Prompt for the API token.")
	}

	switch args[1] {
	case "classes":
		cmd, askToken := newCmd(args[1])
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.listClasses(ctx, *askToken)

	case "create-class", "update-class":
		cmd, askToken := newCmd(args[1])
		id := cmd.String("id", "", "The class to update.")
		subject := cmd.String("subject", "", "Subject taught.")
		fee := cmd.String("fee", "", "Monthly fee, in dollars.")
		description := cmd.String("description", "", "Optional description.")
		cover := cmd.String("cover", "", "Optional cover photo (JPEG or PNG, 5MB max).")
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		isUpdate := args[1] == "update-class"
		if isUpdate && *id == "" {
			cmd.Usage()
			return errHelp
		}
		nc := class.NewClass{
			Subject:     core.CleanString(*subject),
			MonthlyFee:  core.CleanString(*fee),
			Description: core.CleanString(*description),
		}
		if *cover != "" {
			a, err := core.OpenAttachment(*cover)
			if err != nil {
				return err
			}
			nc.CoverPhoto = a
		}
		f := class.CreateForm(nc)
		if isUpdate {
			f = class.UpdateForm(*id, nc)
		}
		return cli.submit(ctx, cli.client, f, class.Durations, *askToken)

	case "delete-class":
		cmd, askToken := newCmd(args[1])
		id := cmd.String("id", "", "The class to delete.")
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.submit(ctx, cli.client, class.DeleteForm(*id), class.Durations, *askToken)

	case "upload-material":
		cmd, askToken := newCmd(args[1])
		classID := cmd.String("class", "", "The class of the material.")
		title := cmd.String("title", "", "Title of the material.")
		lesson := cmd.String("lesson", "", "Lesson the material belongs to.")
		typ := cmd.String("type", "", "pdf, video or link.")
		content := cmd.String("content", "", "URL of a link material.")
		file := cmd.String("file", "", "File of a pdf or video material.")
		date := cmd.String("date", time.Now().Format(core.DateLayout), "Upload date, YYYY-MM-DD.")
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		nm := material.NewMaterial{
			ClassID:    core.CleanString(*classID),
			Title:      core.CleanString(*title),
			LessonName: core.CleanString(*lesson),
			Type:       core.CleanString(*typ, true /* lower */),
			Content:    core.CleanString(*content),
			UploadDate: core.CleanString(*date),
		}
		if *file != "" {
			a, err := core.OpenAttachment(*file)
			if err != nil {
				return err
			}
			nm.File = a
		}
		return cli.submit(ctx, cli.client, material.UploadForm(nm), cli.defaultDurations(), *askToken)

	case "fee-waivers":
		cmd, askToken := newCmd(args[1])
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.listFeeWaivers(ctx, *askToken)

	case "fee-waiver":
		cmd, askToken := newCmd(args[1])
		id := cmd.String("id", "", "The fee waiver request.")
		status := cmd.String("status", "", "Approved or Rejected.")
		comments := cmd.String("comments", "", "Optional comments for the student.")
		discount := cmd.Float64("discount", 0, "Discount percentage granted, when approved.")
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		d := feewaiver.Decision{
			Status:             core.CleanString(*status),
			TeacherComments:    core.CleanString(*comments),
			DiscountPercentage: *discount,
		}
		return cli.submit(ctx, cli.client, feewaiver.DecideForm(*id, d), cli.defaultDurations(), *askToken)

	case "extensions":
		cmd, askToken := newCmd(args[1])
		status := cmd.String("status", extension.StatusAll, "Only show requests with this status.")
		order := cmd.String("sort", "asc", "Order by status: asc (pending first) or desc.")
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.listExtensions(ctx, core.CleanString(*status, true), strings.EqualFold(*order, "desc"), *askToken)

	case "extension":
		cmd, askToken := newCmd(args[1])
		materialID := cmd.String("material", "", "The material of the request.")
		requestID := cmd.String("request", "", "The extension request.")
		status := cmd.String("status", "", "approved or rejected.")
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		d := extension.Decision{
			MaterialID: core.CleanString(*materialID),
			RequestID:  core.CleanString(*requestID),
			Status:     core.CleanString(*status, true),
		}
		return cli.submit(ctx, cli.client, extension.DecideForm(d), extension.Durations, *askToken)

	case "waitlist":
		cmd, _ := newCmd(args[1])
		email := cmd.String("email", "", "Where to send the launch notification.")
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		mailer := waitlist.NewMailer(cli.mailSvc, cli.conf.LaunchDate)
		return cli.submit(ctx, mailer, waitlist.SubscribeForm(waitlist.Subscription{Email: *email}), waitlist.Durations, false)

	case "countdown":
		cmd := flag.NewFlagSet(args[1], flag.ContinueOnError)
		cmd.SetOutput(cli.out)
		once := cmd.Bool("once", false, "Print the time left once instead of every second.")
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.countdown(ctx, *once)

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) defaultDurations() notify.Durations {
	return notify.Durations{Success: cli.conf.Notifications.Success, Error: cli.conf.Notifications.Error}
}

func (cli *commandLine) display() *consoleDisplay {
	return newConsoleDisplay(cli.out, cli.color)
}

// credential returns the saved session, or a token typed by the teacher.
func (cli *commandLine) credential(askToken bool) (core.Credential, error) {
	if !askToken {
		return cli.store.Credential()
	}
	fmt.Fprint(cli.out, "Enter token:")
	token, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return core.Credential{}, err
	}
	return sessionsvc.NewStaticStore(string(token)).Credential()
}

// submit runs one form through a submission controller, then follows the redirect it schedules.
func (cli *commandLine) submit(ctx context.Context, client core.APIClient, f submit.Form, durations notify.Durations, askToken bool) error {
	emitter := notify.NewEmitter(cli.display(), durations)
	defer emitter.Close()

	var cred core.Credential
	if !f.Public {
		var err error
		if cred, err = cli.credential(askToken); err != nil {
			emitter.Show(core.Reason(err, f.FailureMessage), notify.Error)
			return err
		}
	}

	nav := newNavigator()
	ctrl := submit.NewController(submit.Deps{
		Client:    client,
		Validator: cli.validator,
		Notifier:  emitter,
		Navigator: nav,
		Logger:    cli.logger,
	}, cli.conf.RedirectDelay)
	defer ctrl.Close()

	out, err := ctrl.Submit(ctx, cred, f)
	if err != nil {
		cli.printValidation(err)
		return err
	}
	if out.State == submit.Failed {
		return out.Err
	}
	cli.printResult(out.Payload)

	if f.RedirectTo != "" {
		select {
		case path := <-nav.paths:
			return cli.navigate(ctx, path, cred)
		case <-time.After(cli.conf.RedirectDelay + time.Second):
		}
	}
	return nil
}

func (cli *commandLine) printValidation(err error) {
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		return
	}
	d := cli.display()
	for _, fe := range vErr.Fields {
		d.Field(fe.Field, fe.Error)
	}
}

// navigate shows the screen at path. Only the class list has a terminal rendition.
func (cli *commandLine) navigate(ctx context.Context, path string, cred core.Credential) error {
	if path != class.ViewAllPath {
		fmt.Fprintf(cli.out, "-> %s\n", path)
		return nil
	}
	return cli.printClasses(ctx, cred)
}
