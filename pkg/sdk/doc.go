// Package askdex provides a Go client for the askdex question answering
// service: retrieval-augmented answers over a managed search index.
//
//	client, _ := askdex.New("http://localhost:8080",
//	    askdex.WithAPIKey("secret"),
//	)
//
//	answer, err := client.Ask(ctx, "What is RAG?", askdex.Filters{Category: "ai"})
//	if err != nil {
//	    // errors.Is(err, askdex.ErrRetrievalFailed) etc.
//	}
//	fmt.Println(answer.Answer)
//
//	values, _ := client.FilterValues(ctx)
//	fmt.Println(values.Authors, values.Categories)
package askdex
