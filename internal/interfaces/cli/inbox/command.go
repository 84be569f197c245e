// Package inbox is the terminal front end of the cabinet inbox.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	inboxApp "cabinet/internal/application/inbox"
	"cabinet/internal/infrastructure/apiclient"
	"cabinet/internal/infrastructure/config"
	"cabinet/internal/infrastructure/localstore"
	"cabinet/internal/shared/goroutine"
	"cabinet/internal/shared/logger"
)

var (
	env        string
	configPath string
	apiBaseURL string
	token      string
	cabinetID  string
	storePath  string
	schedule   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Read and send cabinet messages from the terminal",
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&env, "env", "e", "", "Environment used to pick the logger mode")
	flags.StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	flags.StringVar(&apiBaseURL, "api", "", "Server base URL (overrides client.api_base_url)")
	flags.StringVar(&token, "token", "", "Bearer token (overrides client.token)")
	flags.StringVar(&cabinetID, "cabinet", "", "Cabinet ID (overrides client.cabinet_id)")
	flags.StringVar(&storePath, "store", "", "Local marker store path (overrides client.store_path)")

	cmd.AddCommand(
		newListCommand(),
		newMembersCommand(),
		newOpenCommand(),
		newSendCommand(),
		newTabCommand(),
		newWatchCommand(),
	)

	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conversations with unread counts and notification badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, false, func(ctx context.Context, s *session) error {
				err := s.inbox.Refresh(ctx)
				snap := s.inbox.Snapshot()
				s.render.conversations(snap)
				s.render.badges(snap)
				s.flushToasts()
				return err
			})
		},
	}
}

func newMembersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "members",
		Short: "List the active members of the cabinet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, false, func(ctx context.Context, s *session) error {
				members, err := s.client.ListMembers(ctx, s.cabinetID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, m := range sortedMembers(members) {
					marker := " "
					if m.UserID == s.userID {
						marker = "*"
					}
					fmt.Fprintf(out, "%s %s %s %s\n", marker, senderStyle.Render(m.DisplayName), dimStyle.Render(m.ContactLabel), dimStyle.Render("direct-"+m.UserID))
				}
				return nil
			})
		},
	}
}

func newOpenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <conversation>",
		Short: "Print a conversation transcript and mark it read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, false, func(ctx context.Context, s *session) error {
				if err := s.inbox.Refresh(ctx); err != nil {
					s.flushToasts()
					return err
				}
				if err := s.inbox.Select(ctx, args[0]); err != nil {
					s.flushToasts()
					return err
				}
				s.render.transcript(s.inbox.Snapshot().Transcript)
				return nil
			})
		},
	}
}

func newSendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "send <conversation> <text...>",
		Short: "Send a message to a conversation",
		Long:  "Send a message to a conversation. Each @name word mentions the member it designates; use @first_last when a first name is shared.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, false, func(ctx context.Context, s *session) error {
				if err := s.inbox.Refresh(ctx); err != nil {
					s.flushToasts()
					return err
				}
				if err := s.inbox.Select(ctx, args[0]); err != nil {
					s.flushToasts()
					return err
				}
				text, err := s.inbox.ResolveMentions(strings.Join(args[1:], " "))
				if err != nil {
					s.flushToasts()
					return err
				}
				sent, err := s.inbox.Send(ctx, text)
				if err != nil {
					s.flushToasts()
					return err
				}
				s.render.message(sent)
				return nil
			})
		},
	}
}

func newTabCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "tab <documents|dossiers|clients>",
		Short:     "Mark every unread notification of a tab as read",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"documents", "dossiers", "clients"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, false, func(ctx context.Context, s *session) error {
				if err := s.inbox.Refresh(ctx); err != nil {
					s.flushToasts()
					return err
				}
				if err := s.inbox.SwitchTab(ctx, args[0]); err != nil {
					s.flushToasts()
					return err
				}
				s.render.badges(s.inbox.Snapshot())
				return nil
			})
		},
	}
}

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [conversation]",
		Short: "Follow the inbox live, reconciling on a schedule",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, true, func(ctx context.Context, s *session) error {
				return s.watch(ctx, args)
			})
		},
	}
	cmd.Flags().StringVar(&schedule, "schedule", "", "Reconciliation cron schedule (overrides client.reconcile_schedule)")
	return cmd
}

// session bundles what every inbox sub-command needs.
type session struct {
	cabinetID string
	userID    string
	client    *apiclient.Client
	store     *localstore.MarkerStore
	inbox     *inboxApp.Inbox
	render    *renderer
	schedule  string
	logger    logger.Interface
}

func withSession(cmd *cobra.Command, live bool, fn func(ctx context.Context, s *session) error) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	log := logger.WithComponent("inbox")

	clientCfg := cfg.Client
	if apiBaseURL != "" {
		clientCfg.APIBaseURL = apiBaseURL
	}
	if token != "" {
		clientCfg.Token = token
	}
	if cabinetID != "" {
		clientCfg.CabinetID = cabinetID
	}
	if storePath != "" {
		clientCfg.StorePath = storePath
	}
	if schedule != "" {
		clientCfg.ReconcileSchedule = schedule
	}
	if clientCfg.APIBaseURL == "" || clientCfg.Token == "" || clientCfg.CabinetID == "" {
		return errors.New("client.api_base_url, client.token and client.cabinet_id are required")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := apiclient.NewClient(clientCfg.APIBaseURL, clientCfg.Token, time.Duration(clientCfg.TimeoutSeconds)*time.Second, log.Named("apiclient"))
	me, err := client.Me(ctx)
	if err != nil {
		return fmt.Errorf("failed to identify the current user: %w", err)
	}

	store, err := localstore.Open(clientCfg.GetStorePath(), log.Named("localstore"))
	if err != nil {
		return err
	}
	defer store.Close()

	// One-shot commands never open realtime streams.
	var subscriber inboxApp.Subscriber
	if live {
		subscriber = client
	}
	in := inboxApp.New(inboxApp.Options{CabinetID: clientCfg.CabinetID, UserID: me.UserID}, client, store, subscriber, log)
	defer in.Close()

	s := &session{
		cabinetID: clientCfg.CabinetID,
		userID:    me.UserID,
		client:    client,
		store:     store,
		inbox:     in,
		render:    newRenderer(cmd.OutOrStdout(), me.UserID, in.Member),
		schedule:  clientCfg.ReconcileSchedule,
		logger:    log,
	}
	return fn(ctx, s)
}

func (s *session) flushToasts() {
	s.render.toasts(s.inbox.Toasts())
}

// watch keeps the inbox live until interrupted. Realtime events update the
// state incrementally; the cron job replaces it with an authoritative refresh.
func (s *session) watch(ctx context.Context, args []string) error {
	if err := s.inbox.Refresh(ctx); err != nil {
		s.flushToasts()
		return err
	}

	var err error
	if len(args) == 1 {
		err = s.inbox.Select(ctx, args[0])
	} else {
		_, err = s.inbox.RestoreSelection(ctx)
	}
	if err != nil {
		s.flushToasts()
	}
	if err := s.inbox.WatchNotifications(ctx); err != nil {
		s.flushToasts()
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(s.schedule, func() {
		if err := s.inbox.Refresh(ctx); err != nil {
			s.logger.Debugw("scheduled reconciliation failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", s.schedule, err)
	}
	c.Start()
	defer func() {
		<-c.Stop().Done()
	}()

	v := newWatchView(s.render)
	v.draw(s.inbox.Snapshot(), s.inbox.Toasts())

	done := make(chan struct{})
	goroutine.SafeGo(s.logger, "inbox-redraw", func() {
		defer close(done)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				v.draw(s.inbox.Snapshot(), s.inbox.Toasts())
			}
		}
	})

	<-done
	return nil
}

// watchView redraws the list when it changes and prints new transcript lines once.
type watchView struct {
	render    *renderer
	openKey   string
	signature string
	printed   map[string]struct{}
}

func newWatchView(r *renderer) *watchView {
	return &watchView{render: r, printed: make(map[string]struct{})}
}

func (v *watchView) draw(snap inboxApp.Snapshot, toasts []inboxApp.Toast) {
	if sig := listSignature(snap); sig != v.signature {
		v.signature = sig
		fmt.Fprintln(v.render.out)
		v.render.conversations(snap)
		v.render.badges(snap)
	}

	if snap.OpenKey != v.openKey {
		v.openKey = snap.OpenKey
		if snap.OpenKey != "" {
			fmt.Fprintln(v.render.out, titleStyle.Render("# "+snap.OpenKey))
		}
	}
	for i := range snap.Transcript {
		m := &snap.Transcript[i]
		if _, ok := v.printed[m.ID]; ok {
			continue
		}
		v.printed[m.ID] = struct{}{}
		v.render.message(m)
	}

	v.render.toasts(toasts)
}

func listSignature(snap inboxApp.Snapshot) string {
	var b strings.Builder
	for _, c := range snap.Conversations {
		fmt.Fprintf(&b, "%s:%d:%d;", c.Key, c.Unread, c.LatestAt.UnixNano())
	}
	for _, tab := range []string{"documents", "dossiers", "clients"} {
		fmt.Fprintf(&b, "%s=%d;", tab, snap.Badges[tab])
	}
	b.WriteString(snap.ActiveTab)
	return b.String()
}
