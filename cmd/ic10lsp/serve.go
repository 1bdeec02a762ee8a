package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"ic10lsp/internal/lsp"
)

const (
	defaultListenHost = "127.0.0.1"
	defaultListenPort = 9257
)

var serveCmd = &cobra.Command{
	Use:   "serve [host] [port]",
	Short: "Run the language server",
	Long: `Run the language server. With no arguments it speaks on stdio. With
--listen it accepts one TCP connection on host:port (default 127.0.0.1:9257).
With a host and no --listen it dials host:port.`,
	Args:         cobra.MaximumNArgs(2),
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	addServeFlags(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("listen", false, "accept a TCP connection instead of using stdio")
}

type transportKind uint8

const (
	transportStdio transportKind = iota
	transportListen
	transportDial
)

type transport struct {
	kind transportKind
	addr string
}

// parseTransport maps the positional host and port onto a transport.
func parseTransport(args []string, listen bool) (transport, error) {
	var host, port string
	if len(args) > 0 {
		host = args[0]
	}
	if len(args) > 1 {
		port = args[1]
		if _, err := strconv.ParseUint(port, 10, 16); err != nil {
			return transport{}, fmt.Errorf("invalid port %q", port)
		}
	}

	switch {
	case !listen && host == "":
		return transport{kind: transportStdio}, nil
	case listen:
		if host == "" {
			host = defaultListenHost
		}
		if net.ParseIP(host).To4() == nil {
			return transport{}, fmt.Errorf("could not parse IPv4 address %q", host)
		}
		if port == "" {
			port = strconv.Itoa(defaultListenPort)
		}
		return transport{kind: transportListen, addr: net.JoinHostPort(host, port)}, nil
	default:
		if port == "" {
			return transport{}, errors.New("no port given")
		}
		return transport{kind: transportDial, addr: net.JoinHostPort(host, port)}, nil
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	listen, err := cmd.Flags().GetBool("listen")
	if err != nil {
		return err
	}
	tr, err := parseTransport(args, listen)
	if err != nil {
		return err
	}

	opts := lsp.ServerOptions{Log: cmd.ErrOrStderr()}
	if path, _ := cmd.Root().PersistentFlags().GetString("config"); path != "" {
		cfg, _, err := loadConfig(cmd, "")
		if err != nil {
			return err
		}
		opts.Config = cfg
		opts.ConfigFixed = true
	}

	ctx := cmd.Context()
	switch tr.kind {
	case transportListen:
		conn, err := acceptOne(ctx, tr.addr)
		if err != nil {
			return err
		}
		defer conn.Close()
		return serve(ctx, conn, conn, opts)
	case transportDial:
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", tr.addr)
		if err != nil {
			return fmt.Errorf("could not open TCP stream: %w", err)
		}
		defer conn.Close()
		return serve(ctx, conn, conn, opts)
	default:
		return serve(ctx, os.Stdin, os.Stdout, opts)
	}
}

func acceptOne(ctx context.Context, addr string) (net.Conn, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	defer ln.Close()
	conn, err := ln.Accept()
	if err != nil {
		return nil, fmt.Errorf("accept on %s: %w", addr, err)
	}
	return conn, nil
}

func serve(ctx context.Context, in io.Reader, out io.Writer, opts lsp.ServerOptions) error {
	server := lsp.NewServer(in, out, opts)
	if err := server.Run(ctx); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
