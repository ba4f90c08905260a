// foodexplorer — a terminal client for the FoodExplorer ordering API.
//
// Usage:
//
//	foodexplorer [-verbose] [-quiet] [-api URL]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"foodexplorer/internal/api"
	"foodexplorer/internal/cart"
	"foodexplorer/internal/conversation"
	"foodexplorer/internal/dish"
	"foodexplorer/internal/display"
	"foodexplorer/internal/domain"
	"foodexplorer/internal/logger"
	"foodexplorer/internal/session"
	"foodexplorer/internal/storage"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".foodexplorer/foodexplorer.log", "file to write logs to (use \"stderr\" to log to console)")
	apiURL := flag.String("api", "", "API base URL (defaults to $FOODEX_API_URL or http://localhost:3333)")
	dbPath := flag.String("db", ".foodexplorer/credentials.db", "path to the local credential database")
	noSave := flag.Bool("no-save", false, "keep credentials in memory only (skip the local database)")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package to the same output so
	// third-party libraries don't spam the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	base := *apiURL
	if base == "" {
		base = os.Getenv("FOODEX_API_URL")
	}
	if base == "" {
		base = "http://localhost:3333"
	}

	// Set up context — cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies. The notifier prints through the UI, which is
	// constructed last; the closure resolves it at call time.
	var ui *display.UI

	var creds domain.CredentialStore
	if *noSave {
		creds = storage.NewMemoryStore(log)
	} else {
		if dir := filepath.Dir(*dbPath); dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		sqlStore, err := storage.OpenSQLite(*dbPath, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: opening credential store: %v\n", err)
			os.Exit(1)
		}
		defer sqlStore.Close()
		creds = sqlStore
	}

	client := api.NewClient(base, log)
	notifier := conversation.NewCLINotifier(log, func(format string, a ...interface{}) {
		if ui != nil {
			ui.Printf(format, a...)
			return
		}
		fmt.Printf(format+"\n", a...)
	})
	sessions := session.New(client, creds, notifier, log)
	client.SetTokenSource(sessions)

	// Hydrate before anything else mounts, so every authenticated
	// request already carries the restored credential.
	sessions.Hydrate(ctx)

	orders := cart.NewMemory(log)
	parser := conversation.NewCommandParser(log)
	ui = display.NewUI(sessions, orders)

	app := &cliApp{
		sessions: sessions,
		client:   client,
		orders:   orders,
		parser:   parser,
		notifier: notifier,
		log:      log,
		ui:       ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal — blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

type cliApp struct {
	sessions *session.Store
	client   *api.Client
	orders   *cart.Memory
	parser   *conversation.CommandParser
	notifier domain.Notifier
	log      *logger.Logger
	ui       *display.UI
	panel    *dish.Panel // current detail view, nil when closed
}

func (a *cliApp) run(ctx context.Context) {
	if user := a.sessions.User(); user != nil {
		a.ui.PrintHeader(fmt.Sprintf("Welcome back, %s!", user.Name))
	} else {
		a.ui.PrintHint("Not signed in. Use: login <email> <password>")
	}

	uiCh := a.ui.InputChan()

	for {
		var input string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case input, ok = <-uiCh:
			if !ok {
				return
			}
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		intent, err := a.parser.Parse(ctx, input)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)
		if quit := a.handleIntent(ctx, intent); quit {
			return
		}
	}
}

// handleIntent dispatches one parsed command. Returns true to exit.
func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	switch intent.Type {
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentSignIn:
		a.signIn(ctx, intent.Payload)
	case domain.IntentSignOut:
		a.sessions.SignOut(ctx)
		a.panel = nil
		a.ui.PrintHint("Signed out.")
	case domain.IntentProfile:
		a.updateProfile(ctx, intent.Payload)
	case domain.IntentShowDish:
		a.showDish(ctx, intent.Payload)
	case domain.IntentIncrease:
		a.adjustQuantity(ctx, true)
	case domain.IntentDecrease:
		a.adjustQuantity(ctx, false)
	case domain.IntentAddToCart:
		a.addToCart(ctx)
	case domain.IntentNewDish:
		a.createDish(ctx)
	case domain.IntentEditDish:
		a.editDish()
	case domain.IntentQuit:
		a.ui.PrintHint("Bye!")
		return true
	case domain.IntentUnknown:
		a.ui.PrintHint(fmt.Sprintf("Didn't catch that (%q). Type 'help' for commands.", intent.Payload))
	}
	return false
}

func (a *cliApp) signIn(ctx context.Context, payload string) {
	fields := strings.Fields(payload)
	if len(fields) != 2 {
		a.ui.PrintHint("Usage: login <email> <password>")
		return
	}
	if a.sessions.Loading() {
		a.ui.PrintHint("Already signing in, hold on.")
		return
	}

	creds := domain.Credentials{Email: fields[0], Password: fields[1]}
	if err := a.sessions.SignIn(ctx, creds); err != nil {
		return // the store already surfaced the message
	}

	user := a.sessions.User()
	a.ui.PrintHeader(fmt.Sprintf("Welcome, %s!", user.Name))
	if user.IsAdmin {
		a.ui.PrintHint("Admin account — use 'new' to create a dish.")
	}
}

// updateProfile handles "profile name <...>", "profile email <...>",
// and "profile avatar <path>".
func (a *cliApp) updateProfile(ctx context.Context, payload string) {
	user := a.sessions.User()
	if user == nil {
		a.ui.PrintHint("Sign in first.")
		return
	}

	field, value, ok := strings.Cut(strings.TrimSpace(payload), " ")
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		a.ui.PrintHint("Usage: profile name <name> | profile email <email> | profile avatar <path>")
		return
	}

	var avatar *domain.FileUpload
	switch field {
	case "name":
		user.Name = value
	case "email":
		user.Email = value
	case "avatar":
		if a.sessions.Loading() {
			a.ui.PrintHint("Still saving the previous change, hold on.")
			return
		}
		f, err := os.Open(value)
		if err != nil {
			a.ui.PrintUrgent(fmt.Sprintf("Cannot open %s: %v", value, err))
			return
		}
		defer f.Close()
		avatar = &domain.FileUpload{Name: filepath.Base(value), Data: f}
	default:
		a.ui.PrintHint("Usage: profile name <name> | profile email <email> | profile avatar <path>")
		return
	}

	_ = a.sessions.UpdateProfile(ctx, user, avatar)
}

func (a *cliApp) showDish(ctx context.Context, payload string) {
	if !a.sessions.SignedIn() {
		a.ui.PrintHint("Sign in first.")
		return
	}

	id, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		a.ui.PrintHint("Usage: dish <id>")
		return
	}

	// Entering the view resets the panel, and with it the quantity.
	a.panel = dish.NewPanel(a.client, a.orders, a.notifier, a.log)
	if err := a.panel.Load(ctx, id); err != nil {
		return // panel surfaced the message, state is failed
	}
	a.renderDish()
}

func (a *cliApp) renderDish() {
	d := a.panel.Dish()
	a.ui.PrintHeader(fmt.Sprintf("=== %s ===", d.Title))
	a.ui.PrintLine(d.Description)

	if len(d.Ingredients) > 0 {
		names := make([]string, len(d.Ingredients))
		for i, ing := range d.Ingredients {
			names[i] = ing.Name
		}
		a.ui.PrintHint("Ingredients: " + strings.Join(names, ", "))
	}
	a.ui.PrintLine("$ " + d.Price)

	user := a.sessions.User()
	if user != nil && user.IsAdmin {
		a.ui.PrintHint("Type 'edit' to edit this dish.")
		return
	}
	a.ui.PrintHint(fmt.Sprintf("Quantity: %s — '+'/'-' to adjust, 'add' to include in the order.", a.panel.FormattedQuantity()))
}

func (a *cliApp) adjustQuantity(ctx context.Context, up bool) {
	if a.panel == nil || a.panel.State() != dish.PanelLoaded {
		a.ui.PrintHint("Open a dish first: dish <id>")
		return
	}
	if user := a.sessions.User(); user != nil && user.IsAdmin {
		a.ui.PrintHint("Admins edit dishes; quantities are for customers.")
		return
	}

	if up {
		a.panel.Increase(ctx)
	} else {
		a.panel.Decrease(ctx)
	}
	a.ui.PrintLine("Quantity: " + a.panel.FormattedQuantity())
}

func (a *cliApp) addToCart(ctx context.Context) {
	if a.panel == nil || a.panel.State() != dish.PanelLoaded {
		a.ui.PrintHint("Open a dish first: dish <id>")
		return
	}
	if user := a.sessions.User(); user != nil && user.IsAdmin {
		a.ui.PrintHint("Admins edit dishes; ordering is for customers.")
		return
	}

	if err := a.panel.AddToCart(ctx); err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}
	d := a.panel.Dish()
	a.ui.PrintLine(fmt.Sprintf("Added %sx %s to the order (%d items total).",
		a.panel.FormattedQuantity(), d.Title, a.orders.Count()))
}

// editDish is the admin branch of the detail view. The edit workflow
// itself lives in the web admin, so this only points there.
func (a *cliApp) editDish() {
	user := a.sessions.User()
	if user == nil || !user.IsAdmin {
		a.ui.PrintUrgent("Access denied.")
		return
	}
	if a.panel == nil || a.panel.State() != dish.PanelLoaded {
		a.ui.PrintHint("Open a dish first: dish <id>")
		return
	}
	a.ui.PrintHint(fmt.Sprintf("Edit dish %d in the web admin.", a.panel.Dish().ID))
}

// createDish walks an admin through the creation form. The role check
// happens once here, at view entry.
func (a *cliApp) createDish(ctx context.Context) {
	user := a.sessions.User()
	if user == nil || !user.IsAdmin {
		a.ui.PrintUrgent("Access denied: only admins can create dishes.")
		return
	}

	composer := dish.NewComposer(a.client, a.notifier, a.log)
	a.ui.PrintHeader("New dish — answer each prompt, or 'cancel' to abort.")

	imagePath, ok := a.prompt(ctx, "Image path")
	if !ok {
		return
	}
	f, err := os.Open(imagePath)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Cannot open %s: %v", imagePath, err))
		return
	}
	defer f.Close()
	composer.SetImage(filepath.Base(imagePath), f)

	if title, ok := a.prompt(ctx, "Name"); ok {
		composer.SetTitle(title)
	} else {
		return
	}

	a.ui.PrintHint("Ingredients — one per line, 'remove <name>' to drop one, empty line to finish.")
	for {
		line, ok := a.prompt(ctx, "Ingredient")
		if !ok {
			return
		}
		if line == "" {
			break
		}
		if rest, found := strings.CutPrefix(line, "remove "); found {
			composer.RemoveIngredient(strings.TrimSpace(rest))
			continue
		}
		composer.SetPendingIngredient(line)
		composer.AddIngredient(ctx)
	}

	if cat, ok := a.prompt(ctx, "Category (dishes/drinks/dessert)"); ok {
		composer.SetCategory(domain.ParseCategory(cat))
	} else {
		return
	}
	if price, ok := a.prompt(ctx, "Price"); ok {
		composer.SetPrice(price)
	} else {
		return
	}
	if description, ok := a.prompt(ctx, "Description"); ok {
		composer.SetDescription(description)
	} else {
		return
	}

	if err := composer.Submit(ctx); err != nil {
		return // composer surfaced the message
	}
	// Back to the catalog root.
	a.panel = nil
}

// prompt prints a label and waits for the next input line. Returns
// ok=false when the user cancels or the context ends.
func (a *cliApp) prompt(ctx context.Context, label string) (string, bool) {
	a.ui.PrintHint(label + ":")
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-a.ui.InputChan():
		if !ok {
			return "", false
		}
		line = strings.TrimSpace(line)
		if strings.EqualFold(line, "cancel") {
			a.ui.PrintHint("Cancelled.")
			return "", false
		}
		return line, true
	}
}

func (a *cliApp) showHelp() {
	a.ui.PrintHeader("Commands:")
	a.ui.PrintLine("  login <email> <password>   Sign in")
	a.ui.PrintLine("  logout                     Sign out")
	a.ui.PrintLine("  profile name|email <v>     Update your profile")
	a.ui.PrintLine("  profile avatar <path>      Upload a new avatar")
	a.ui.PrintLine("  dish <id>  (or just <id>)  Open a dish")
	a.ui.PrintLine("  + / -                      Adjust the quantity")
	a.ui.PrintLine("  add                        Include the dish in your order")
	a.ui.PrintLine("  new                        Create a dish (admin)")
	a.ui.PrintLine("  edit                       Edit the open dish (admin)")
	a.ui.PrintLine("  help                       Show this message")
	a.ui.PrintLine("  quit                       Exit")
}
