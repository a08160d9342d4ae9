// Package boardka embeds the board game recommender in a Go program.
//
// The client loads a game catalog (xlsx or YAML file, or an in-memory list),
// keeps a tag preference profile (JSON file or Redis/Valkey hash) and ranks
// the catalog against player count, play time, tags and difficulty.
//
//	client, _ := boardka.New(ctx,
//	    boardka.WithCatalogFile("data/games.xlsx"),
//	    boardka.WithPreferenceFile("data/user_prefs.json"),
//	)
//	defer client.Close()
//
//	rec, _ := client.Recommend(ctx, boardka.Request{
//	    Players:        4,
//	    TargetTime:     boardka.Int(60),
//	    Tags:           []string{"전략"},
//	    UsePreferences: true,
//	})
//	for _, r := range rec.Results {
//	    fmt.Printf("%s %.3f\n", r.Game.Name, r.Score)
//	}
package boardka
