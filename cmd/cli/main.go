// Command cli is an interactive terminal browser for the catalog. It
// fetches a list from the api-server once and then filters, sorts and
// navigates entirely in memory.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"listit/internal/catalog"
	"listit/pkg/models"
)

type session struct {
	api *apiClient

	listID int64
	all    []models.Line
	query    catalog.Query
	sort     catalog.SortStrategy
	useSort  bool

	page     int
	pageSize int

	nav    catalog.Navigator
	hasNav bool
}

func main() {
	base := flag.String("api", "http://localhost:8080", "api-server base URL")
	pageSize := flag.Int("page-size", 15, "rows per page")
	flag.Parse()

	s := &session{
		api:      newAPIClient(strings.TrimRight(*base, "/")),
		query:    catalog.NewQuery(),
		pageSize: *pageSize,
	}

	fmt.Println("list-it browser - type 'help' for commands")
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return
		case "help":
			printHelp()
		case "lists":
			s.showLists()
		case "open":
			s.open(args)
		case "ls":
			s.render()
		case "search":
			s.query.NameText = strings.Join(args, " ")
			s.page = 0
			s.render()
		case "status", "content", "opinion", "tag":
			s.toggle(cmd, args)
		case "adult":
			s.query.ShowAdult = !s.query.ShowAdult
			fmt.Printf("show adult: %v\n", s.query.ShowAdult)
			s.render()
		case "sort":
			s.setSort(args)
		case "reset":
			s.query = catalog.NewQuery()
			s.sort = ""
			s.useSort = false
			s.page = 0
			s.render()
		case "next":
			s.page++
			s.render()
		case "prev":
			if s.page > 0 {
				s.page--
			}
			s.render()
		case "show":
			s.show(args)
		case "left":
			s.move(-catalog.StrideCard)
		case "right":
			s.move(catalog.StrideCard)
		case "up":
			s.move(-catalog.StrideRow)
		case "down":
			s.move(catalog.StrideRow)
		case "highlights":
			s.showHighlights()
		default:
			fmt.Printf("unknown command %q - try 'help'\n", cmd)
		}
	}
}

func printHelp() {
	fmt.Print(`commands:
  lists                    show every list
  open <id>                open a list
  ls                       render the current view
  search <text>            name/synonym substring filter ('' clears)
  status|content|opinion|tag <value>
                           cycle a value: include -> exclude -> off
  adult                    toggle showing adult manhwa entries
  sort <name-asc|name-desc|episode-asc|episode-desc|opinion|off>
  reset                    clear filters and sorting
  next / prev              page through the view
  show <line-id>           open a line's detail card
  left right up down       navigate cards from the detail view
  highlights               entries waiting for verification
  quit
`)
}

func (s *session) showLists() {
	items, err := s.api.lists()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	rows := make([][]string, 0, len(items))
	for _, l := range items {
		rows = append(rows, []string{strconv.FormatInt(l.ID, 10), l.Name, strconv.Itoa(l.TotalLines)})
	}
	fmt.Println(renderTable([]string{"ID", "Name", "Lines"}, rows))
}

func (s *session) open(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: open <list-id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("invalid list id")
		return
	}

	all, err := s.api.lines(id)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	s.listID = id
	s.all = all
	s.query = catalog.NewQuery()
	s.sort = ""
	s.useSort = false
	s.page = 0
	s.hasNav = false
	fmt.Printf("opened list %d (%d entries)\n", id, len(all))
	s.render()
}

func (s *session) toggle(field string, args []string) {
	if len(args) == 0 {
		fmt.Printf("usage: %s <value>\n", field)
		return
	}
	value := strings.Join(args, " ")

	var f catalog.FieldFilter
	switch field {
	case "status":
		f = s.query.Status
	case "content":
		f = s.query.Content
	case "opinion":
		f = s.query.Opinion
	case "tag":
		f = s.query.Tags
	}

	switch f.Toggle(value) {
	case catalog.StateInclude:
		fmt.Printf("%s %q: include\n", field, value)
	case catalog.StateExclude:
		fmt.Printf("%s %q: exclude\n", field, value)
	default:
		fmt.Printf("%s %q: off\n", field, value)
	}
	s.page = 0
	s.render()
}

func (s *session) setSort(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: sort <name-asc|name-desc|episode-asc|episode-desc|opinion|off>")
		return
	}
	if args[0] == "off" {
		s.useSort = false
	} else {
		s.sort = catalog.ParseSortStrategy(args[0])
		s.useSort = true
	}
	s.render()
}

// view applies the current filter and ordering to the fetched list.
func (s *session) view() []models.Line {
	v := catalog.Filter(s.all, s.query)
	if s.useSort {
		return catalog.Sort(v, s.sort)
	}
	return catalog.SortCanonical(v)
}

func (s *session) render() {
	if s.all == nil {
		fmt.Println("no list open - use 'open <id>'")
		return
	}

	v := s.view()
	pages := (len(v) + s.pageSize - 1) / s.pageSize
	if pages == 0 {
		pages = 1
	}
	if s.page >= pages {
		s.page = pages - 1
	}

	start := s.page * s.pageSize
	end := start + s.pageSize
	if end > len(v) {
		end = len(v)
	}

	rows := make([][]string, 0, end-start)
	for _, ln := range v[start:end] {
		rows = append(rows, []string{
			strconv.FormatInt(ln.ID, 10),
			ln.Name,
			ln.Content,
			ln.Status,
			ln.Episode,
			ln.Opinion,
			string(catalog.Classify(ln)),
		})
	}
	fmt.Println(renderTable([]string{"ID", "Name", "Content", "Status", "Ep", "Opinion", "Class"}, rows))
	fmt.Printf("page %d/%d - %d entries\n", s.page+1, pages, len(v))
}

func (s *session) show(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: show <line-id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("invalid line id")
		return
	}

	v := s.view()
	var current *models.Line
	for i := range v {
		if v[i].ID == id {
			current = &v[i]
			break
		}
	}
	if current == nil {
		fmt.Println("line is not in the current view")
		return
	}

	s.nav = catalog.NewNavigator(*current, v)
	s.hasNav = true
	s.renderCard(*current)
}

func (s *session) move(delta int) {
	if !s.hasNav {
		fmt.Println("no detail view open - use 'show <line-id>'")
		return
	}
	if !s.nav.Move(delta) {
		fmt.Println("(edge of the view)")
		return
	}
	if ln, ok := s.nav.Current(); ok {
		s.renderCard(ln)
	}
}

func (s *session) renderCard(ln models.Line) {
	fmt.Printf("\n#%d  %s\n", ln.ID, ln.Name)
	fmt.Printf("  %s | %s | ep %s | %s\n", ln.Content, ln.Status, ln.Episode, ln.Opinion)
	if class := catalog.Classify(ln); class != catalog.ClassNone {
		fmt.Printf("  class: %s\n", class)
	}
	if ln.Tags != "" {
		fmt.Printf("  tags: %s\n", ln.Tags)
	}
	if len(ln.Synonyms) > 0 {
		fmt.Printf("  aka: %s\n", strings.Join(ln.Synonyms, "; "))
	}
	if ln.Synopsis != "" {
		fmt.Printf("  %s\n", ln.Synopsis)
	}

	refs, pos, err := s.api.lineSequences(ln.ID)
	if err == nil && len(refs) > 0 {
		fmt.Printf("  sequence: %s (#%d)\n", refs[0].Name, refs[0].Order)
		if pos != nil {
			if pos.PrevName != "" {
				fmt.Printf("  previous: %s\n", pos.PrevName)
			}
			if pos.Opening && pos.NextName != "" {
				fmt.Printf("  opens the sequence - next: %s\n", pos.NextName)
			}
		}
	}
	fmt.Printf("  [%d/%d in view]\n\n", s.nav.Index()+1, s.nav.Len())
}

func (s *session) showHighlights() {
	if s.listID == 0 {
		fmt.Println("no list open - use 'open <id>'")
		return
	}
	items, err := s.api.toHighlight(s.listID)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if len(items) == 0 {
		fmt.Println("nothing waiting for verification")
		return
	}
	rows := make([][]string, 0, len(items))
	for _, ln := range items {
		rows = append(rows, []string{
			strconv.FormatInt(ln.ID, 10), ln.Name, ln.Content, ln.Status, ln.Episode,
		})
	}
	fmt.Println(renderTable([]string{"ID", "Name", "Content", "Status", "Ep"}, rows))
}
