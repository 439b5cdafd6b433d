// file: cmd/nachos/main.go

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/barufa/nachos/cmd/add"
	"github.com/barufa/nachos/cmd/create"
	"github.com/barufa/nachos/cmd/delete"
	"github.com/barufa/nachos/cmd/extract"
	"github.com/barufa/nachos/cmd/info"
	"github.com/barufa/nachos/cmd/list"
	"github.com/barufa/nachos/cmd/mkdir"
	"github.com/barufa/nachos/cmd/rmdir"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nachos",
		Short: "Inspect and manipulate Nachos disk images",
	}

	root.AddCommand(
		newFormatCmd(),
		newMkdirCmd(),
		newRmdirCmd(),
		newPutCmd(),
		newGetCmd(),
		newLsCmd(),
		newRmCmd(),
		newStatCmd(),
	)
	return root
}

func newFormatCmd() *cobra.Command {
	opts := create.DefaultCreateOptions()
	cmd := &cobra.Command{
		Use:   "format <disk-image>",
		Short: "Create and format a new disk image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return create.Create(args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Force, "force", opts.Force, "overwrite an existing disk image")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "suppress non-error output")
	return cmd
}

func newMkdirCmd() *cobra.Command {
	opts := mkdir.DefaultMkdirOptions()
	cmd := &cobra.Command{
		Use:   "mkdir <disk-image> <path>",
		Short: "Create a directory inside a disk image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mkdir.Mkdir(args[0], args[1], opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "suppress non-error output")
	return cmd
}

func newRmdirCmd() *cobra.Command {
	opts := rmdir.DefaultRmdirOptions()
	cmd := &cobra.Command{
		Use:   "rmdir <disk-image> <path>",
		Short: "Recursively remove a directory from a disk image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rmdir.Rmdir(args[0], args[1], opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "suppress non-error output")
	return cmd
}

func newPutCmd() *cobra.Command {
	opts := add.DefaultAddOptions()
	var dest string
	cmd := &cobra.Command{
		Use:   "put <disk-image> <host-file>",
		Short: "Copy a host file into a disk image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return add.Add(args[0], args[1], dest, opts)
		},
	}
	cmd.Flags().StringVar(&dest, "as", "", "destination path inside the disk image (default: /<basename>)")
	cmd.Flags().BoolVar(&opts.Force, "force", opts.Force, "overwrite an existing destination file")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "suppress non-error output")
	return cmd
}

func newGetCmd() *cobra.Command {
	opts := extract.DefaultExtractOptions()
	cmd := &cobra.Command{
		Use:   "get <disk-image> <path>",
		Short: "Copy a file out of a disk image onto the host filesystem",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return extract.Extract(args[0], args[1], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", opts.OutputDir, "directory to extract into")
	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", opts.Overwrite, "overwrite an existing host file")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "suppress non-error output")
	return cmd
}

func newLsCmd() *cobra.Command {
	opts := list.DefaultListOptions()
	cmd := &cobra.Command{
		Use:   "ls <disk-image> [path]",
		Short: "List the contents of a directory inside a disk image",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dirPath := "/"
			if len(args) == 2 {
				dirPath = args[1]
			}
			return list.List(args[0], dirPath, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.JSON, "json", opts.JSON, "output in JSON format")
	cmd.Flags().BoolVarP(&opts.Long, "long", "l", opts.Long, "show sector and size columns")
	cmd.Flags().StringVar(&opts.Sort, "sort", opts.Sort, "sort order: name, size")
	cmd.Flags().BoolVarP(&opts.Reverse, "reverse", "r", opts.Reverse, "reverse sort order")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "suppress non-error output")
	return cmd
}

func newRmCmd() *cobra.Command {
	opts := delete.DefaultDeleteOptions()
	cmd := &cobra.Command{
		Use:   "rm <disk-image> <path>",
		Short: "Remove a file or directory from a disk image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return delete.Delete(args[0], args[1], opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", opts.Force, "skip the interactive confirmation")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "suppress non-error output")
	return cmd
}

func newStatCmd() *cobra.Command {
	opts := info.DefaultInfoOptions()
	cmd := &cobra.Command{
		Use:   "stat <disk-image> [path]",
		Short: "Report information about a disk image or a path within it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			return info.Info(args[0], path, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.JSON, "json", opts.JSON, "output in JSON format")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "suppress non-error output")
	return cmd
}
