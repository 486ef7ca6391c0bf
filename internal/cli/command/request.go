package command

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sharepay/sharepay-go/internal/cli/connection"
	"github.com/sharepay/sharepay-go/internal/core/domain"
)

// RequestCommand sends an arbitrary authenticated API request.
func RequestCommand() *cli.Command {
	return &cli.Command{
		Name:      "request",
		Aliases:   []string{"req"},
		Usage:     "Send an authenticated request and print the response",
		ArgsUsage: "METHOD PATH",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "JSON request body"},
			&cli.StringSliceFlag{Name: "header", Aliases: []string{"H"}, Usage: "Extra header as 'Name: value'"},
			&cli.BoolFlag{Name: "include", Aliases: []string{"i"}, Usage: "Print the status line and headers"},
		},
		Action: request,
	}
}

func request(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	if c.NArg() < 2 {
		return domain.ErrMissingArgument.WithDetails("METHOD PATH")
	}
	method := strings.ToUpper(c.Args().Get(0))
	req := connection.NewRequest(method, c.Args().Get(1))

	if data := c.String("data"); data != "" {
		if !json.Valid([]byte(data)) {
			return domain.ErrInvalidArgument.WithDetails("--data is not valid JSON")
		}
		req.Body = []byte(data)
	}
	for _, h := range c.StringSlice("header") {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("header %q", h))
		}
		req.SetHeader(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	d, err := rt.Dispatcher(c.Context)
	if err != nil {
		return err
	}
	resp, err := d.Dispatch(c.Context, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &connection.TransportError{Method: method, URL: resp.Request.URL.String(), Err: err}
	}

	if c.Bool("include") {
		fmt.Fprintf(rt.Console, "%s %s\n", resp.Proto, resp.Status)
		_ = resp.Header.Write(rt.Console)
		fmt.Fprintln(rt.Console)
	}
	writeBody(rt.Console, body)

	if resp.StatusCode >= http.StatusBadRequest {
		return &connection.ServerError{Status: resp.StatusCode, Detail: http.StatusText(resp.StatusCode)}
	}
	return nil
}

// writeBody pretty-prints JSON and copies anything else.
func writeBody(w io.Writer, body []byte) {
	if len(body) == 0 {
		return
	}
	var buf bytes.Buffer
	if json.Indent(&buf, bytes.TrimSpace(body), "", "  ") == nil {
		buf.WriteByte('\n')
		_, _ = w.Write(buf.Bytes())
		return
	}
	_, _ = w.Write(body)
	if body[len(body)-1] != '\n' {
		fmt.Fprintln(w)
	}
}
