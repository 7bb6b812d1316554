package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ravenfield/argus-deepval/deepval/strcase"
)

var slugCmd = &cobra.Command{
	Use:   "slug <text>...",
	Short: "Turn text into a URL-safe slug",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(strcase.Slugify(strings.Join(args, " ")))
	},
}

var caseCmd = &cobra.Command{
	Use:   "case <style> <text>...",
	Short: "Convert text between casing styles",
	Long:  `Styles: camel, pascal, snake, kebab, title.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args[1:], " ")
		var out string
		switch args[0] {
		case "camel":
			out = strcase.Camel(text)
		case "pascal":
			out = strcase.Pascal(text)
		case "snake":
			out = strcase.Snake(text)
		case "kebab":
			out = strcase.Kebab(text)
		case "title":
			out = strcase.Title(text)
		default:
			return fmt.Errorf("unknown case style %q", args[0])
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(slugCmd, caseCmd)
}
