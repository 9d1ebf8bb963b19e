package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/baseplate/cms/config"
	"github.com/baseplate/cms/internal/core/auth"
	"github.com/baseplate/cms/internal/core/field"
	"github.com/baseplate/cms/internal/core/model"
	"github.com/baseplate/cms/internal/core/query"
	"github.com/baseplate/cms/internal/core/validation"
	"github.com/baseplate/cms/internal/core/value"
	"github.com/baseplate/cms/internal/log"
	"github.com/baseplate/cms/internal/storage"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "cmsctl",
		Usage: "Inspect content models and manage credentials",
		Commands: []*cli.Command{
			modelsCommand(),
			entriesCommand(),
			fieldTypeCommand(),
			hashPasswordCommand(),
			apiKeyCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		log.Fatalf("%v", err)
	}
}

// openService loads the configuration the server uses and opens its store.
func openService(ctx context.Context) (*model.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := log.SetLevel(cfg.Log.Level); err != nil {
		return nil, nil, err
	}

	namespace := uuid.Nil
	if cfg.Storage.Namespace != "" {
		if namespace, err = uuid.Parse(cfg.Storage.Namespace); err != nil {
			return nil, nil, err
		}
	}

	repo, closer, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	svc := model.NewService(repo, validation.NewValidator(), namespace)
	return svc, func() { _ = closer.Close() }, nil
}

func modelsCommand() *cli.Command {
	return &cli.Command{
		Name:  "models",
		Usage: "List models",
		Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
		Action: func(ctx context.Context, c *cli.Command) error {
			svc, done, err := openService(ctx)
			if err != nil {
				return err
			}
			defer done()

			resp, err := svc.List(ctx)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(resp)
			}
			fmt.Println(renderModels(resp.Models))
			return nil
		},
	}
}

func entriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "entries",
		Usage: "List a model's entries, filtered and sorted",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "model", Required: true, Usage: "model id"},
			&cli.StringFlag{Name: "filter-field", Usage: "field id or createdAt"},
			&cli.StringFlag{Name: "op", Value: string(query.Equals), Usage: "filter operator"},
			&cli.StringFlag{Name: "value", Usage: "filter operand"},
			&cli.StringFlag{Name: "sort", Usage: "field id or createdAt; defaults to the model's sort"},
			&cli.StringFlag{Name: "order", Usage: "asc or desc; defaults to the model's order"},
			&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			svc, done, err := openService(ctx)
			if err != nil {
				return err
			}
			defer done()

			m, err := svc.Get(ctx, c.String("model"))
			if err != nil {
				return err
			}

			req := &query.Request{
				Filter: query.Criterion{
					Field:    c.String("filter-field"),
					Operator: query.Operator(c.String("op")),
					Operand:  value.StringOf(c.String("value")),
				},
				Sort:  c.String("sort"),
				Order: model.Order(c.String("order")),
			}
			resp := query.Run(*m, req)

			if c.Bool("json") {
				return printJSON(resp)
			}
			fmt.Println(renderEntries(*m, resp.Entries))
			fmt.Printf("%d entries sorted by %s %s\n", resp.Total, resp.Sort, resp.Order)
			return nil
		},
	}
}

func fieldTypeCommand() *cli.Command {
	return &cli.Command{
		Name:      "field-type",
		Usage:     "Print the default state of a field type",
		ArgsUsage: "TYPE",
		Action: func(ctx context.Context, c *cli.Command) error {
			name := c.Args().First()
			if name == field.OptionRange {
				return printJSON(field.NewRangeFieldState())
			}
			return printJSON(field.NewFieldState(name))
		},
	}
}

func hashPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash-password",
		Usage:     "Print the bcrypt hash to set as ADMIN_PASSWORD_HASH",
		ArgsUsage: "PASSWORD",
		Action: func(ctx context.Context, c *cli.Command) error {
			password := c.Args().First()
			if password == "" {
				return fmt.Errorf("password argument is required")
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Println(hash)
			return nil
		},
	}
}

func apiKeyCommand() *cli.Command {
	return &cli.Command{
		Name:  "api-key",
		Usage: "Generate an API key and the hash to set as API_KEY_HASH",
		Action: func(ctx context.Context, c *cli.Command) error {
			key, err := auth.GenerateAPIKey()
			if err != nil {
				return err
			}
			fmt.Printf("key:  %s\nhash: %s\n", key.Key, key.Hash)
			return nil
		},
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
