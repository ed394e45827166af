// Package main provides the CLI entrypoint for echotype.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/echotype/echotype/internal/api"
	"github.com/echotype/echotype/internal/audio"
	"github.com/echotype/echotype/internal/config"
	"github.com/echotype/echotype/internal/model"
	"github.com/echotype/echotype/internal/stats"
	"github.com/echotype/echotype/internal/statsui"
	"github.com/echotype/echotype/internal/store"
	"github.com/echotype/echotype/internal/tui"
	"github.com/echotype/echotype/internal/wrongbook"
)

const (
	defaultServerURL        = "http://localhost:5000"
	defaultTimeoutSec       = 60
	defaultVoice            = "en-US-natalie"
	defaultRate             = -15
	defaultPitch            = -5
	defaultSlowOffset       = 15
	defaultPlayer           = "mpv --no-video"
	defaultAutoAdvanceMs    = 1200
	defaultFeedbackMs       = 900
	defaultAnonymousCap     = 10
	defaultAuthenticatedCap = 50
)

var (
	serverURL        string
	serverTimeout    int
	speechVoice      string
	speechRate       int
	speechPitch      int
	speechSlowOffset int
	playerCommand    string
	autoPlay         bool
	autoAdvanceMs    int
	feedbackMs       int
	anonymousCap     int
	authenticatedCap int
	darkMode         bool

	statsSince string
	statsLast  int
	statsPlain bool

	wordsRemove string
	wordsClear  bool

	historyID int

	authEmail string
	authName  string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "echotype",
		Short:         "Terminal dictation trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&serverURL, "server", defaultServerURL, "backend service URL")
	rootCmd.Flags().IntVar(&serverTimeout, "timeout", defaultTimeoutSec, "request timeout in seconds")
	rootCmd.Flags().StringVar(&speechVoice, "voice", defaultVoice, "speech voice id")
	rootCmd.Flags().IntVar(&speechRate, "rate", defaultRate, "speech rate adjustment")
	rootCmd.Flags().IntVar(&speechPitch, "pitch", defaultPitch, "speech pitch adjustment")
	rootCmd.Flags().IntVar(&speechSlowOffset, "slow-offset", defaultSlowOffset, "extra rate reduction for slow playback")
	rootCmd.Flags().StringVar(&playerCommand, "player", defaultPlayer, "audio player command")
	rootCmd.Flags().BoolVar(&autoPlay, "auto-play", false, "play each item automatically")
	rootCmd.Flags().IntVar(&autoAdvanceMs, "auto-advance-ms", defaultAutoAdvanceMs, "auto-play advance delay in ms")
	rootCmd.Flags().IntVar(&feedbackMs, "feedback-ms", defaultFeedbackMs, "answer feedback display time in ms")
	rootCmd.Flags().IntVar(&anonymousCap, "anonymous-cap", defaultAnonymousCap, "selection cap without login")
	rootCmd.Flags().IntVar(&authenticatedCap, "authenticated-cap", defaultAuthenticatedCap, "selection cap when logged in")
	rootCmd.Flags().BoolVar(&darkMode, "dark-mode", true, "use dark color palette")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "server", &serverURL, fileCfg.Server.URL)
	applyIntConfig(cmd, "timeout", &serverTimeout, fileCfg.Server.Timeout)
	applyStringConfig(cmd, "voice", &speechVoice, fileCfg.Speech.Voice)
	applyIntConfig(cmd, "rate", &speechRate, fileCfg.Speech.Rate)
	applyIntConfig(cmd, "pitch", &speechPitch, fileCfg.Speech.Pitch)
	applyIntConfig(cmd, "slow-offset", &speechSlowOffset, fileCfg.Speech.SlowOffset)
	applyStringConfig(cmd, "player", &playerCommand, fileCfg.Speech.Player)
	applyBoolConfig(cmd, "auto-play", &autoPlay, fileCfg.Practice.AutoPlay)
	applyIntConfig(cmd, "auto-advance-ms", &autoAdvanceMs, fileCfg.Practice.AutoAdvanceMs)
	applyIntConfig(cmd, "feedback-ms", &feedbackMs, fileCfg.Practice.FeedbackMs)
	applyIntConfig(cmd, "anonymous-cap", &anonymousCap, fileCfg.Practice.AnonymousCap)
	applyIntConfig(cmd, "authenticated-cap", &authenticatedCap, fileCfg.Practice.AuthenticatedCap)
	applyBoolConfig(cmd, "dark-mode", &darkMode, fileCfg.UI.DarkMode)

	if err := validateFlags(); err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	applySavedSettings(ctx, cmd, st, fileCfg)

	client := api.NewClient(serverURL, time.Duration(serverTimeout)*time.Second)
	user := restoreAuth(ctx, st, client)

	manager := audio.NewManager(client, audio.Params{
		VoiceID:    speechVoice,
		Rate:       speechRate,
		Pitch:      speechPitch,
		SlowOffset: speechSlowOffset,
	})
	player := audio.NewPlayer(client, config.DefaultAudioCacheDir(), playerCommand)

	cfg := tui.Config{
		AutoPlay:         autoPlay,
		AutoAdvanceMs:    autoAdvanceMs,
		FeedbackMs:       feedbackMs,
		AnonymousCap:     anonymousCap,
		AuthenticatedCap: authenticatedCap,
		DarkMode:         darkMode,
	}

	m := tui.NewModel(cfg, client, manager, player, st, user)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// applySavedSettings fills values the user changed from inside the TUI.
// Precedence: flag > config file > saved settings > built-in default. A
// missing settings document is seeded with the current effective values.
func applySavedSettings(ctx context.Context, cmd *cobra.Command, st *store.Store, fileCfg config.FileConfig) {
	saved, ok, err := st.LoadSettings(ctx)
	if err != nil {
		logErrf("failed to load saved settings: %v\n", err)
		return
	}
	if !ok {
		rate := speechRate
		seed := model.Settings{
			DarkMode:   darkMode,
			SpeechRate: &rate,
			VoiceID:    speechVoice,
			AutoPlay:   autoPlay,
		}
		if err := st.SaveSettings(ctx, seed); err != nil {
			logErrf("failed to seed settings: %v\n", err)
		}
		return
	}
	if !cmd.Flags().Changed("voice") && fileCfg.Speech.Voice == nil && saved.VoiceID != "" {
		speechVoice = saved.VoiceID
	}
	if !cmd.Flags().Changed("rate") && fileCfg.Speech.Rate == nil && saved.SpeechRate != nil {
		speechRate = *saved.SpeechRate
	}
	if !cmd.Flags().Changed("auto-play") && fileCfg.Practice.AutoPlay == nil {
		autoPlay = saved.AutoPlay
	}
	if !cmd.Flags().Changed("dark-mode") && fileCfg.UI.DarkMode == nil {
		darkMode = saved.DarkMode
	}
}

// restoreAuth loads the saved session cookie and cached user. The cookie may
// have expired server-side; that surfaces on the first authenticated request.
func restoreAuth(ctx context.Context, st *store.Store, client *api.Client) *model.User {
	cookie, ok, err := st.LoadAuthCookie(ctx)
	if err != nil || !ok {
		return nil
	}
	client.SetCookie(cookie)
	user, ok, err := st.LoadUser(ctx)
	if err != nil || !ok {
		return nil
	}
	return &user
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show practice statistics",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N days")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	cfg := model.StatsConfig{Since: sinceTime, Last: statsLast}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		return printPlainStats(cmd, st, cfg)
	}

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func printPlainStats(cmd *cobra.Command, st *store.Store, cfg model.StatsConfig) error {
	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Log); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if err := stats.RenderHistoryTable(out, report.History); err != nil {
		return fmt.Errorf("failed to render history: %w", err)
	}
	width := 0
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}
	if err := stats.RenderAccuracyCurve(out, report.History, width); err != nil {
		return fmt.Errorf("failed to render accuracy curve: %w", err)
	}
	return stats.RenderWrongWords(out, report.WrongWords)
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Manage the wrong-word book",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
	cmd.Flags().StringVar(&wordsRemove, "remove", "", "remove one entry by text")
	cmd.Flags().BoolVar(&wordsClear, "clear", false, "remove all entries")
	return cmd
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	if wordsRemove != "" && wordsClear {
		return fmt.Errorf("--remove and --clear are mutually exclusive")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	entries, err := st.LoadWrongWords(ctx)
	if err != nil {
		return fmt.Errorf("failed to load wrong words: %w", err)
	}

	switch {
	case wordsClear:
		if err := st.SaveWrongWords(ctx, nil); err != nil {
			return fmt.Errorf("failed to clear wrong words: %w", err)
		}
		logErrf("Removed %d entries\n", len(entries))
		return nil
	case wordsRemove != "":
		if _, ok := wrongbook.Find(entries, wordsRemove); !ok {
			return fmt.Errorf("no entry for %q", wordsRemove)
		}
		if err := st.SaveWrongWords(ctx, wrongbook.Remove(entries, wordsRemove)); err != nil {
			return fmt.Errorf("failed to save wrong words: %w", err)
		}
		logErrf("Removed %q\n", wordsRemove)
		return nil
	default:
		return stats.RenderWrongWords(cmd.OutOrStdout(), entries)
	}
}

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the backend",
		Args:  cobra.NoArgs,
		RunE:  runLoginCmd,
	}
	cmd.Flags().StringVar(&authEmail, "email", "", "account email")
	return cmd
}

func runLoginCmd(cmd *cobra.Command, _ []string) error {
	client, st, cleanup, err := openClientAndStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	email, password, err := promptCredentials(authEmail)
	if err != nil {
		return err
	}

	ctx := context.Background()
	user, err := client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := persistAuth(ctx, st, client, user); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a backend account",
		Args:  cobra.NoArgs,
		RunE:  runRegisterCmd,
	}
	cmd.Flags().StringVar(&authName, "name", "", "display name")
	cmd.Flags().StringVar(&authEmail, "email", "", "account email")
	return cmd
}

func runRegisterCmd(cmd *cobra.Command, _ []string) error {
	client, st, cleanup, err := openClientAndStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	name := strings.TrimSpace(authName)
	if name == "" {
		name, err = promptLine("Name: ")
		if err != nil {
			return err
		}
	}
	email, password, err := promptCredentials(authEmail)
	if err != nil {
		return err
	}

	ctx := context.Background()
	user, err := client.Register(ctx, name, email, password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	if err := persistAuth(ctx, st, client, user); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered as %s <%s>\n", user.Name, user.Email)
	return nil
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the saved session",
		Args:  cobra.NoArgs,
		RunE:  runLogoutCmd,
	}
}

func runLogoutCmd(cmd *cobra.Command, _ []string) error {
	client, st, cleanup, err := openClientAndStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	if user := restoreAuth(ctx, st, client); user == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
		return nil
	}
	// The server-side logout is best effort; the local session is cleared
	// regardless.
	if err := client.Logout(ctx); err != nil {
		logErrf("server logout failed: %v\n", err)
	}
	if err := st.ClearAuthCookie(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := st.ClearUser(ctx); err != nil {
		return fmt.Errorf("failed to clear user: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE:  runWhoamiCmd,
	}
}

func runWhoamiCmd(cmd *cobra.Command, _ []string) error {
	client, st, cleanup, err := openClientAndStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	cached := restoreAuth(ctx, st, client)
	if cached == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
		return nil
	}
	user, err := client.CurrentUser(ctx)
	if err != nil {
		// Fall back to the cached identity when the backend is unreachable.
		logErrf("could not verify session: %v\n", err)
		user = *cached
	} else if err := st.SaveUser(ctx, user); err != nil {
		logErrf("failed to refresh cached user: %v\n", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Name, user.Email)
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List practice sessions saved on the backend",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyID, "id", 0, "show one session in detail")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	client, st, cleanup, err := openClientAndStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	if user := restoreAuth(ctx, st, client); user == nil {
		return fmt.Errorf("not logged in (run: echotype login)")
	}
	if historyID > 0 {
		return printHistoryDetail(ctx, cmd, client, historyID)
	}
	sessions, err := client.PracticeHistory(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No practice sessions recorded.")
		return nil
	}
	for _, s := range sessions {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d/%d correct\t%d%%\t%s\n",
			s.ID, s.Title, s.CorrectCount, s.TotalItems, s.Accuracy, s.CreatedAt.Format("2006-01-02 15:04")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func printHistoryDetail(ctx context.Context, cmd *cobra.Command, client *api.Client, id int) error {
	session, err := client.PracticeSessionDetail(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch session %d: %w", id, err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", session.Title, session.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "%d/%d correct, %d%% accuracy\n", session.CorrectCount, session.TotalItems, session.Accuracy)
	if session.WordsData == "" {
		return nil
	}
	var items []struct {
		Text       string `json:"text"`
		UserAnswer string `json:"user_answer"`
		IsCorrect  *bool  `json:"is_correct"`
	}
	if err := json.Unmarshal([]byte(session.WordsData), &items); err != nil {
		return fmt.Errorf("failed to decode session items: %w", err)
	}
	for _, item := range items {
		mark := "-"
		switch {
		case item.IsCorrect == nil:
		case *item.IsCorrect:
			mark = "ok"
		default:
			mark = "wrong"
		}
		if _, err := fmt.Fprintf(out, "%-8s%s\t%s\n", mark, item.Text, item.UserAnswer); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func openClientAndStore(cmd *cobra.Command) (*api.Client, *store.Store, func(), error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "server", &serverURL, fileCfg.Server.URL)
	applyIntConfig(cmd, "timeout", &serverTimeout, fileCfg.Server.Timeout)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	cleanup := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	client := api.NewClient(serverURL, time.Duration(serverTimeout)*time.Second)
	return client, st, cleanup, nil
}

func persistAuth(ctx context.Context, st *store.Store, client *api.Client, user model.User) error {
	if cookie := client.Cookie(); cookie != "" {
		if err := st.SaveAuthCookie(ctx, cookie); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
	}
	if err := st.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func promptCredentials(email string) (string, string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		var err error
		email, err = promptLine("Email: ")
		if err != nil {
			return "", "", err
		}
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return "", "", err
	}
	if email == "" || password == "" {
		return "", "", fmt.Errorf("email and password must not be empty")
	}
	return email, password, nil
}

func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(prompt)
	}
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# echotype configuration
# Uncomment a value to enable it. CLI flags override config values.

[server]
# url = %q
# timeout-seconds = %d

[speech]
# voice = %q              # Voice id passed to the speech service
# rate = %d               # Speech rate adjustment
# pitch = %d              # Speech pitch adjustment
# slow-offset = %d        # Extra rate reduction for slow playback
# player = %q             # Audio player command

[practice]
# auto-play = false       # Play each item automatically
# auto-advance-ms = %d    # Auto-play advance delay in ms
# feedback-ms = %d        # Answer feedback display time in ms
# anonymous-cap = %d      # Selection cap without login
# authenticated-cap = %d  # Selection cap when logged in

[ui]
# dark-mode = true        # Use dark color palette
`,
		defaultServerURL,
		defaultTimeoutSec,
		defaultVoice,
		defaultRate,
		defaultPitch,
		defaultSlowOffset,
		defaultPlayer,
		defaultAutoAdvanceMs,
		defaultFeedbackMs,
		defaultAnonymousCap,
		defaultAuthenticatedCap,
	)
}

func validateFlags() error {
	if strings.TrimSpace(serverURL) == "" {
		return fmt.Errorf("--server must not be empty")
	}
	if serverTimeout <= 0 {
		return fmt.Errorf("--timeout must be > 0")
	}
	if strings.TrimSpace(speechVoice) == "" {
		return fmt.Errorf("--voice must not be empty")
	}
	if speechSlowOffset < 0 {
		return fmt.Errorf("--slow-offset must be >= 0")
	}
	if strings.TrimSpace(playerCommand) == "" {
		return fmt.Errorf("--player must not be empty")
	}
	if autoAdvanceMs < 0 {
		return fmt.Errorf("--auto-advance-ms must be >= 0")
	}
	if feedbackMs < 0 {
		return fmt.Errorf("--feedback-ms must be >= 0")
	}
	if anonymousCap <= 0 || authenticatedCap <= 0 {
		return fmt.Errorf("selection caps must be > 0")
	}
	if authenticatedCap < anonymousCap {
		return fmt.Errorf("--authenticated-cap must be >= --anonymous-cap")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
