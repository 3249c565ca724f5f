package rtf_test

import (
	"fmt"
	"log"
	"strings"

	"github.com/tsawler/rtf"
)

func Example_extractText() {
	doc := `{\rtf1\ansi{\fonttbl\f0 Arial;}\f0 Hello, {\b world}!\par Caf\'e9\par}`

	text, warnings, err := rtf.FromReader(strings.NewReader(doc)).Text()
	if err != nil {
		log.Fatal(err)
	}
	for _, w := range warnings {
		fmt.Println("Warning:", w.Message)
	}

	fmt.Print(text)
	// Output:
	// Hello, world!
	// Café
}

func Example_metadata() {
	doc := `{\rtf1{\info{\title Minutes}{\author Board}}Body}`

	info := rtf.Must(rtf.FromReader(strings.NewReader(doc)).Info())
	fmt.Println(info["title"], "by", info["author"])
	// Output:
	// Minutes by Board
}

func Example_legacyCodePage() {
	doc := `{\rtf1 \'cf\'f0\'e8\'e2\'e5\'f2}`

	text := rtf.MustText(rtf.FromReader(strings.NewReader(doc)).CodePage(1251).Text())
	fmt.Println(text)
	// Output:
	// Привет
}
