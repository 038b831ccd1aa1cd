package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/trezcool/educonnect/core"
	"github.com/trezcool/educonnect/core/class"
	"github.com/trezcool/educonnect/core/extension"
	"github.com/trezcool/educonnect/core/feewaiver"
	"github.com/trezcool/educonnect/core/material"
	"github.com/trezcool/educonnect/core/notify"
	"github.com/trezcool/educonnect/core/waitlist"
)

// queryFailed notifies why a list could not be shown.
func (cli *commandLine) queryFailed(err error, fallback string, durations notify.Durations) error {
	emitter := notify.NewEmitter(cli.display(), durations)
	defer emitter.Close()

	if core.IsAuthError(err) {
		cli.logger.Warn(fmt.Sprintf("querying: %v", err), err)
	} else {
		cli.logger.Error(fmt.Sprintf("querying: %v", err), err)
	}
	emitter.Show(core.Reason(err, fallback), notify.Error)
	return err
}

func (cli *commandLine) newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
}

// Classes

func (cli *commandLine) listClasses(ctx context.Context, askToken bool) error {
	cred, err := cli.credential(askToken)
	if err != nil {
		return cli.queryFailed(err, class.QueryFailureText, class.Durations)
	}
	return cli.printClasses(ctx, cred)
}

func (cli *commandLine) printClasses(ctx context.Context, cred core.Credential) error {
	classes, err := class.NewService(cli.client).Query(ctx, cred)
	if err != nil {
		return cli.queryFailed(err, class.QueryFailureText, class.Durations)
	}

	cli.display().Heading(fmt.Sprintf("Your classes (%d)", len(classes)))
	if len(classes) == 0 {
		fmt.Fprintln(cli.out, "You have not created any class yet.")
		return nil
	}
	tw := cli.newTable()
	fmt.Fprintln(tw, "ID\tSUBJECT\tFEE\tSTUDENTS\tDESCRIPTION")
	for _, c := range classes {
		fmt.Fprintf(tw, "%s\t%s\t$%.2f\t%d\t%s\n", c.ID, c.Subject, c.MonthlyFee, c.StudentsCount, c.DisplayDescription())
	}
	return tw.Flush()
}

// Fee waivers

func (cli *commandLine) listFeeWaivers(ctx context.Context, askToken bool) error {
	cred, err := cli.credential(askToken)
	if err != nil {
		return cli.queryFailed(err, feewaiver.QueryFailureText, cli.defaultDurations())
	}
	reqs, err := feewaiver.NewService(cli.client).Query(ctx, cred)
	if err != nil {
		return cli.queryFailed(err, feewaiver.QueryFailureText, cli.defaultDurations())
	}

	cli.display().Heading(fmt.Sprintf("Fee waiver requests (%d)", len(reqs)))
	if len(reqs) == 0 {
		fmt.Fprintln(cli.out, "No fee waiver requests.")
		return nil
	}
	tw := cli.newTable()
	fmt.Fprintln(tw, "ID\tSTUDENT\tREASON\tSTATUS\tDISCOUNT\tDOCUMENT")
	for _, r := range reqs {
		doc := "-"
		if r.DocumentPath != "" {
			doc = feewaiver.DocumentURL(cli.conf.API.BaseURL, r.DocumentPath)
			if kind := feewaiver.DocumentKind(r.DocumentPath); kind != "" {
				doc += " (" + kind + ")"
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g%%\t%s\n", r.ID, r.StudentName(), r.ShortReason(), r.Status, r.DiscountPercentage, doc)
	}
	return tw.Flush()
}

// Extensions

func (cli *commandLine) listExtensions(ctx context.Context, status string, desc, askToken bool) error {
	cred, err := cli.credential(askToken)
	if err != nil {
		return cli.queryFailed(err, extension.QueryFailureText, extension.Durations)
	}
	reqs, err := extension.NewService(cli.client).Query(ctx, cred)
	if err != nil {
		return cli.queryFailed(err, extension.QueryFailureText, extension.Durations)
	}
	reqs = extension.Sort(extension.Filter(reqs, status), desc)

	cli.display().Heading(fmt.Sprintf("Extension requests (%d)", len(reqs)))
	if len(reqs) == 0 {
		fmt.Fprintln(cli.out, "No extension requests.")
		return nil
	}
	tw := cli.newTable()
	fmt.Fprintln(tw, "MATERIAL\tREQUEST\tSTUDENT\tCLASS\tLESSON\tREQUESTED\tSTATUS")
	for _, r := range reqs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.MaterialID, r.RequestID, r.StudentName, r.ClassSubject, r.LessonName,
			r.RequestedAt.Local().Format("2006-01-02 15:04"), r.Status)
	}
	return tw.Flush()
}

// Countdown

func (cli *commandLine) countdown(ctx context.Context, once bool) error {
	launch := cli.conf.LaunchDate
	if once {
		cli.printRemaining(waitlist.Until(launch, waitlist.NowFunc()))
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	err := waitlist.Countdown(ctx, launch, cli.printRemaining)
	if err == context.Canceled {
		return nil
	}
	return err
}

func (cli *commandLine) printRemaining(rem waitlist.Remaining) {
	if rem.IsZero() {
		fmt.Fprintf(cli.out, "Launched on %s!\n", cli.conf.LaunchDate.Format("January 2, 2006"))
		return
	}
	fmt.Fprintf(cli.out, "Launching in %s\n", rem)
}

// Submission results

// printResult shows what the backend answered to a successful submission, when it answered something.
func (cli *commandLine) printResult(payload interface{}) {
	switch res := payload.(type) {
	case *class.Class:
		fmt.Fprintf(cli.out, "%s  %s  $%.2f\n", res.ID, res.Subject, res.MonthlyFee)
	case *material.UploadResult:
		m := res.Material
		fmt.Fprintf(cli.out, "%s  %s (%s)  %s\n", m.ID, m.Title, m.Type, m.Content)
	case *feewaiver.DecideResult:
		r := res.FeeWaiver
		fmt.Fprintf(cli.out, "%s  %s  %s  %g%%\n", r.ID, r.StudentName(), r.Status, r.DiscountPercentage)
	}
}
