package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newLanguageCmd 创建 language 子命令。
// 命令用于展示全部语言、对应文件后缀以及注释与字符串标记，缺省的标记显示为 "-"。
func newLanguageCmd(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "展示已知语言、后缀及注释标记",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "LANGUAGE\tEXTENSIONS\tLINE\tBLOCK\tSTRING"); err != nil {
				return err
			}

			for _, item := range application.registry.Languages() {
				block := "-"
				if item.HasBlockComment() {
					block = item.BlockCommentStart + " " + item.BlockCommentEnd
				}
				if _, err := fmt.Fprintf(
					writer,
					"%s\t%s\t%s\t%s\t%s\n",
					item.Name,
					strings.Join(item.Extensions, ", "),
					orDash(item.LineComment),
					block,
					orDash(item.StringDelimiter),
				); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
