package docdesk_test

import (
	"fmt"

	"github.com/finite-collective/docdesk"
)

func ExampleEstimateReadingTime() {
	fmt.Println(docdesk.EstimateReadingTime("A short note."))
	// Output: 1 min
}

func ExampleNewStore() {
	st, err := docdesk.NewStore("./docs", docdesk.WithIgnore("drafts/**"))
	if err != nil {
		fmt.Println("store unavailable:", err)
		return
	}
	fmt.Println(st.Root() != "")
}
