// Command compass is the terminal client for the CareerCompass job tracker:
// browse aggregated postings, filter and paginate them, and manage the
// favorites pipeline.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/TriByteGenius/CareerCompass/internal/api"
	"github.com/TriByteGenius/CareerCompass/internal/config"
	"github.com/TriByteGenius/CareerCompass/internal/display"
	"github.com/TriByteGenius/CareerCompass/internal/filter"
	"github.com/TriByteGenius/CareerCompass/internal/logger"
	"github.com/TriByteGenius/CareerCompass/internal/models"
	"github.com/TriByteGenius/CareerCompass/internal/store"
)

const usage = `usage: compass <command> [flags]

commands:
  jobs      list postings (one shot, with filter flags)
  browse    interactive filter/pagination session
  search    trigger server-side aggregation (admin)
  login     sign in and persist the session
  signup    create an account
  logout    discard the session
  whoami    show the signed-in user
  fav       manage favorites: list | toggle | status
`

type app struct {
	log       *logger.Logger
	client    *api.Client
	session   *store.SessionStore
	jobs      *store.JobStore
	favorites *store.FavoriteStore
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}

	client := api.NewClient(api.Config{
		BaseURL:   cfg.APIBaseURL,
		RateRPS:   cfg.APIRateRPS,
		RateBurst: cfg.APIRateBurst,
		Logger:    log,
	})
	session := store.NewSessionStore(client, log, cfg.SessionFile)
	a := &app{
		log:       log,
		client:    client,
		session:   session,
		jobs:      store.NewJobStore(client, log),
		favorites: store.NewFavoriteStore(client, session, log),
	}

	ctx := context.Background()
	a.favorites.BindSession(ctx)
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "jobs":
		return a.cmdJobs(ctx, args)
	case "browse":
		return a.cmdBrowse(ctx)
	case "search":
		return a.cmdSearch(ctx, args)
	case "login":
		return a.cmdLogin(ctx, args)
	case "signup":
		return a.cmdSignup(ctx, args)
	case "logout":
		a.session.Logout()
		fmt.Println("logged out")
		return nil
	case "whoami":
		return a.cmdWhoami(ctx)
	case "fav":
		return a.cmdFav(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) cmdJobs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("jobs", flag.ExitOnError)
	keyword := fs.String("keyword", "", "free-text search")
	website := fs.String("website", filter.All, "job board filter")
	status := fs.String("status", filter.All, "posting status filter")
	days := fs.String("days", filter.All, "posting age in days (1, 7, 30)")
	sort := fs.String("sort", filter.DefaultSortOrder, "sort order: asc or desc")
	page := fs.Int("page", 1, "1-based page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state := filter.State{
		Keyword:    *keyword,
		Website:    *website,
		Status:     *status,
		TimeInDays: *days,
		SortOrder:  *sort,
		Page:       *page,
	}
	a.jobs.Fetch(ctx, state.WireQuery())
	a.printListing()
	return nil
}

// cmdBrowse runs the interactive session: edits go through the filter
// synchronizer, every committed location change triggers a fetch, and the
// listing is re-rendered from store state.
func (a *app) cmdBrowse(ctx context.Context) error {
	loc := filter.NewMemoryLocation("/jobs")
	sync := filter.NewSynchronizer(loc, 0)
	defer sync.Close()

	loc.OnChange(func() {
		a.jobs.Fetch(ctx, filter.FromQuery(loc.Query()).WireQuery())
		a.printListing()
	})

	// initial load
	a.jobs.Fetch(ctx, sync.State().WireQuery())
	a.printListing()

	fmt.Println(`commands: kw <text> | site <board> | status <s> | days <n> | sort | page <n> | clear | back | fav <job-id> | quit`)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
		case "kw":
			sync.SetKeyword(arg)
			// let the debounce window elapse so the commit lands
			time.Sleep(filter.DefaultDebounce + 100*time.Millisecond)
		case "site":
			sync.SetWebsite(arg)
		case "status":
			sync.SetStatus(arg)
		case "days":
			sync.SetTimeInDays(arg)
		case "sort":
			sync.ToggleSortOrder()
		case "page":
			n, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Println("page needs a number")
				continue
			}
			sync.SetPage(n)
		case "clear":
			sync.ClearFilters()
		case "back":
			loc.Back()
		case "fav":
			if err := a.favorites.Toggle(ctx, arg); err != nil {
				fmt.Println("favorite failed:", err)
			}
		case "quit", "exit":
			return nil
		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

func (a *app) cmdSearch(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: compass search <keyword>")
	}
	a.jobs.AdminSearch(ctx, strings.Join(args, " "))
	if st := a.jobs.AdminState(); st.Phase == store.PhaseFailed {
		return fmt.Errorf("%s", st.ErrorMessage)
	}
	fmt.Println(a.jobs.AdminMessage())
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return fmt.Errorf("usage: compass login -u <username> -p <password>")
	}
	if err := a.session.Login(ctx, *username, *password); err != nil {
		return err
	}
	fmt.Println("signed in as", a.session.User().Username)
	return nil
}

func (a *app) cmdSignup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	username := fs.String("u", "", "username")
	email := fs.String("e", "", "email")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *email == "" || *password == "" {
		return fmt.Errorf("usage: compass signup -u <username> -e <email> -p <password>")
	}
	msg, err := a.session.Signup(ctx, *username, *email, *password)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "account created"
	}
	fmt.Println(msg)
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	if !a.session.Authenticated() {
		fmt.Println("not signed in")
		return nil
	}
	if err := a.session.Refresh(ctx); err != nil {
		return err
	}
	u := a.session.User()
	fmt.Printf("%s <%s>\n", u.Username, u.Email)
	return nil
}

func (a *app) cmdFav(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: compass fav list [-status <s>] | toggle <job-id> | status <job-id> <status>")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("fav list", flag.ExitOnError)
		status := fs.String("status", "all", "workflow status tab")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		var err error
		if *status == "all" {
			err = a.favorites.FetchAll(ctx)
		} else {
			err = a.favorites.FetchByStatus(ctx, models.ApplicationStatus(*status))
		}
		if err != nil {
			return err
		}
		a.printFavorites()
		return nil
	case "toggle":
		if len(args) < 2 {
			return fmt.Errorf("usage: compass fav toggle <job-id>")
		}
		if err := a.favorites.Toggle(ctx, args[1]); err != nil {
			return err
		}
		if a.favorites.IsFavorited(args[1]) {
			fmt.Println("added to favorites")
		} else {
			fmt.Println("removed from favorites")
		}
		return nil
	case "status":
		if len(args) < 3 {
			return fmt.Errorf("usage: compass fav status <job-id> <status>")
		}
		if err := a.favorites.UpdateStatus(ctx, args[1], models.ApplicationStatus(args[2])); err != nil {
			return err
		}
		fmt.Println("status updated")
		return nil
	default:
		return fmt.Errorf("unknown fav subcommand %q", args[0])
	}
}

func (a *app) printListing() {
	st := a.jobs.State()
	switch st.Phase {
	case store.PhasePending:
		fmt.Println("loading...")
		return
	case store.PhaseFailed:
		fmt.Println("error:", st.ErrorMessage)
		return
	}

	page := a.jobs.Page()
	now := time.Now()
	for _, job := range page.Content {
		badge := display.JobFreshness(job.Time, now)
		fmt.Printf("%-12s [%-11s] %s - %s, %s\n", job.ID, badge.Text, job.Name, job.Company, job.Location)
	}
	fmt.Printf("page %d of %d (%d postings)\n", page.PageNumber+1, page.TotalPages, page.TotalElements)
}

func (a *app) printFavorites() {
	counts := a.favorites.CountByStatus()
	fmt.Printf("favorites: %d total", counts["all"])
	for _, status := range models.ApplicationStatuses() {
		if n := counts[string(status)]; n > 0 {
			fmt.Printf(", %d %s", n, status)
		}
	}
	fmt.Println()
	for _, e := range a.favorites.Entries() {
		name, company := "(posting removed)", ""
		if e.Job != nil {
			name, company = e.Job.Name, e.Job.Company
		}
		fmt.Printf("%-12d %-10s %s - %s\n", e.ID, e.Status, name, company)
	}
}
