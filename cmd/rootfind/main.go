package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rootfind/internal/config"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rootfind",
		Short:         "Поиск действительных корней функции одной переменной",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "путь к YAML/JSON конфигурации")

	root.AddCommand(newServeCmd(), newSolveCmd(), newMethodsCmd())
	return root
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ошибка:", err)
		os.Exit(1)
	}
}
