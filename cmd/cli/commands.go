package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"pokehub/pkg/models"
)

var asJSON bool

func init() {
	for _, c := range []*cobra.Command{searchCmd, randomCmd, currentCmd, statsCmd, movesCmd, typesCmd, compareCmd, teamCmd} {
		c.Flags().BoolVar(&asJSON, "json", false, "print the server response as JSON")
	}
	movesCmd.Flags().Int("limit", 20, "how many moves to show")
	teamCmd.Flags().Bool("random", false, "draw six random pokemon instead of naming them")
	eventsCmd.Flags().String("tcp", "", "read the TCP feed at this address instead of the websocket")
	eventsCmd.Flags().Bool("reconnect", false, "reconnect after the feed drops")
}

var searchCmd = &cobra.Command{
	Use:   "search <name|id>",
	Short: "Look up a pokemon and make it the current one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var card models.Card
		if err := newAPIClient().doJSON(cmd.Context(), http.MethodGet, "/pokemon/"+url.PathEscape(args[0]), nil, &card); err != nil {
			return err
		}
		return show(cmd, card, func() { renderCard(cmd.OutOrStdout(), card) })
	},
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Look up a random pokemon and make it the current one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var card models.Card
		if err := newAPIClient().doJSON(cmd.Context(), http.MethodGet, "/random", nil, &card); err != nil {
			return err
		}
		return show(cmd, card, func() { renderCard(cmd.OutOrStdout(), card) })
	},
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current pokemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var card models.Card
		if err := newAPIClient().doJSON(cmd.Context(), http.MethodGet, "/current", nil, &card); err != nil {
			return err
		}
		return show(cmd, card, func() { renderCard(cmd.OutOrStdout(), card) })
	},
}

var rawCmd = &cobra.Command{
	Use:   "raw",
	Short: "Show the current pokemon's upstream payload",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var view models.RawView
		if err := newAPIClient().doJSON(cmd.Context(), http.MethodGet, "/current/raw", nil, &view); err != nil {
			return err
		}
		renderRaw(cmd.OutOrStdout(), view)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the current pokemon's base stats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var s models.StatSummary
		if err := newAPIClient().doJSON(cmd.Context(), http.MethodGet, "/current/stats", nil, &s); err != nil {
			return err
		}
		return show(cmd, s, func() { renderStats(cmd.OutOrStdout(), s) })
	},
}

type movesResponse struct {
	Pokemon    string   `json:"pokemon"`
	Shown      []string `json:"shown"`
	ShownCount int      `json:"shown_count"`
	TotalCount int      `json:"total_count"`
	Remaining  int      `json:"remaining"`
}

var movesCmd = &cobra.Command{
	Use:   "moves",
	Short: "List the current pokemon's moves",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		var m movesResponse
		path := "/current/moves?limit=" + strconv.Itoa(limit)
		if err := newAPIClient().doJSON(cmd.Context(), http.MethodGet, path, nil, &m); err != nil {
			return err
		}
		return show(cmd, m, func() { renderMoves(cmd.OutOrStdout(), m) })
	},
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Show the current pokemon's types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var t models.TypeSummary
		if err := newAPIClient().doJSON(cmd.Context(), http.MethodGet, "/current/types", nil, &t); err != nil {
			return err
		}
		return show(cmd, t, func() { renderTypes(cmd.OutOrStdout(), t) })
	},
}

type compareResponse struct {
	Left       models.Card `json:"left"`
	Right      models.Card `json:"right"`
	LeftTotal  int         `json:"left_total"`
	RightTotal int         `json:"right_total"`
	Winner     string      `json:"winner"`
}

var compareCmd = &cobra.Command{
	Use:   "compare <a> <b>",
	Short: "Compare two pokemon by total base stat",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		q.Set("a", args[0])
		q.Set("b", args[1])
		var r compareResponse
		if err := newAPIClient().doJSON(cmd.Context(), http.MethodGet, "/compare?"+q.Encode(), nil, &r); err != nil {
			return err
		}
		return show(cmd, r, func() { renderCompare(cmd.OutOrStdout(), r) })
	},
}

type teamResponse struct {
	Members          []models.TeamMember `json:"members"`
	DistinctTypes    []string            `json:"distinct_types"`
	TypeCount        int                 `json:"type_count"`
	AverageTotalStat int                 `json:"average_total_stat"`
}

var teamCmd = &cobra.Command{
	Use:   "team [name|id ...]",
	Short: "Build a team of six and summarize it",
	Long: `Build a team of six and summarize it.

Name exactly six pokemon, or pass --random to let the server draw them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		random, _ := cmd.Flags().GetBool("random")
		client := newAPIClient()

		var r teamResponse
		var err error
		if random {
			err = client.doJSON(cmd.Context(), http.MethodGet, "/team/random", nil, &r)
		} else {
			err = client.doJSON(cmd.Context(), http.MethodPost, "/team", map[string]any{"members": args}, &r)
		}
		if err != nil {
			return err
		}
		return show(cmd, r, func() { renderTeam(cmd.OutOrStdout(), r) })
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Follow the live search/compare/team feed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tcpAddr, _ := cmd.Flags().GetString("tcp")
		reconnect, _ := cmd.Flags().GetBool("reconnect")
		out := cmd.OutOrStdout()

		run := func() error {
			if tcpAddr != "" {
				return runFeedTCP(cmd.Context(), out, tcpAddr)
			}
			wsURL, err := websocketURL(baseURL, "/ws")
			if err != nil {
				return err
			}
			return runFeedWS(cmd.Context(), out, wsURL)
		}

		for {
			err := run()
			if !reconnect || cmd.Context().Err() != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "feed disconnected: %v\n", err)
			time.Sleep(time.Second)
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the session token, starting fresh next time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := clearToken(tokenPath); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
		return nil
	},
}

func show(cmd *cobra.Command, v any, render func()) error {
	if asJSON {
		return printJSON(cmd.OutOrStdout(), v)
	}
	render()
	return nil
}
