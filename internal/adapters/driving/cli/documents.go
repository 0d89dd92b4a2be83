package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/watch"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"docs"},
	Short:   "Manage the document library",
	Long:    `Add, organise, and download loan papers, land records, and other documents.`,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsAddCmd = &cobra.Command{
	Use:   "add [file...]",
	Short: "Add files to the library",
	Long: `Add one or more files to the library. Supported types: pdf, png, jpg, jpeg,
doc, docx, txt, csv, xls, xlsx. If any file is unsupported nothing is added.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDocumentsAdd,
}

var documentsRenameCmd = &cobra.Command{
	Use:   "rename [doc-id] [new-name]",
	Short: "Rename a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentsRename,
}

var documentsMoveCmd = &cobra.Command{
	Use:   "move [doc-id] [folder]",
	Short: "Move a document to a folder",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentsMove,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsDelete,
}

var documentsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every document",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsClear,
}

var documentsDownloadCmd = &cobra.Command{
	Use:   "download [doc-id]",
	Short: "Save a document's content to a file",
	Long:  `Save a document's content to a file. Use --output - to write to stdout.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsDownload,
}

var documentsFoldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List folders in use",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsFolders,
}

var documentsWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Add files dropped into a folder",
	Long: `Watch a directory and add every supported file that appears in it.
Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentsWatch,
}

// Flags for documents commands.
var (
	documentsFolder  string
	documentsOutput  string
	documentsConfirm bool
	watchExisting    bool
)

func init() {
	documentsListCmd.Flags().StringVar(&documentsFolder, "folder", "", "Only list documents in this folder")
	documentsAddCmd.Flags().StringVar(&documentsFolder, "folder", "", "Folder to file documents under")
	documentsWatchCmd.Flags().StringVar(&documentsFolder, "folder", "", "Folder to file documents under")
	documentsWatchCmd.Flags().BoolVar(&watchExisting, "existing", false, "Also add files already in the directory")
	documentsDownloadCmd.Flags().StringVarP(&documentsOutput, "output", "o", "", "Output path (default: document name)")
	documentsClearCmd.Flags().BoolVarP(&documentsConfirm, "yes", "y", false, "Do not ask for confirmation")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsAddCmd)
	documentsCmd.AddCommand(documentsRenameCmd)
	documentsCmd.AddCommand(documentsMoveCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	documentsCmd.AddCommand(documentsClearCmd)
	documentsCmd.AddCommand(documentsDownloadCmd)
	documentsCmd.AddCommand(documentsFoldersCmd)
	documentsCmd.AddCommand(documentsWatchCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs := documentService.List()
	if documentsFolder != "" {
		filtered := docs[:0:0]
		for i := range docs {
			if strings.EqualFold(docs[i].Folder, documentsFolder) {
				filtered = append(filtered, docs[i])
			}
		}
		docs = filtered
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	var total int64
	for i := range docs {
		printDocument(cmd, &docs[i])
		total += docs[i].Size
	}
	cmd.Printf("Total: %d documents, %s\n", len(docs), humanize.Bytes(uint64(max(total, 0))))
	return nil
}

func printDocument(cmd *cobra.Command, d *domain.DocumentRecord) {
	cmd.Printf("  %s\n", d.ID)
	cmd.Printf("    Name:     %s\n", d.Name)
	cmd.Printf("    Folder:   %s\n", d.Folder)
	cmd.Printf("    Size:     %s (%s)\n", humanize.Bytes(uint64(max(d.Size, 0))), d.SizeClass())
	if d.PageCount > 0 {
		cmd.Printf("    Pages:    %d\n", d.PageCount)
	}
	if d.RiskLevel != nil {
		cmd.Printf("    Risk:     %s\n", *d.RiskLevel)
	}
	if !d.HasContent() {
		cmd.Println("    Content:  not available")
	}
	cmd.Printf("    Uploaded: %s\n", humanize.Time(d.UploadedAt))
	cmd.Println()
}

func runDocumentsAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	uploads := make([]domain.FileUpload, 0, len(args))
	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}

		name := filepath.Base(path)
		p := path
		uploads = append(uploads, domain.FileUpload{
			Name:     name,
			Size:     info.Size(),
			MIMEType: domain.MIMETypeFor(name),
			Folder:   documentsFolder,
			Open:     func() (io.ReadCloser, error) { return os.Open(p) },
		})
	}

	records, err := documentService.Add(cmd.Context(), uploads)
	if err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	// Content is read in the background; wait so it is saved before exit.
	documentService.Wait()

	for _, r := range records {
		cmd.Printf("Added %s (%s)\n", r.Name, r.ID)
	}
	return nil
}

func runDocumentsRename(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Rename(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to rename document: %w", err)
	}
	cmd.Printf("Renamed %s to %q\n", args[0], strings.TrimSpace(args[1]))
	return nil
}

func runDocumentsMove(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Move(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to move document: %w", err)
	}
	doc, err := documentService.Get(args[0])
	if err != nil {
		return err
	}
	cmd.Printf("Moved %s to %s\n", doc.Name, doc.Folder)
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func runDocumentsClear(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	count := len(documentService.List())
	if count == 0 {
		cmd.Println("Library is already empty.")
		return nil
	}
	if !documentsConfirm {
		return fmt.Errorf("this deletes %d documents, re-run with --yes to confirm", count)
	}

	documentService.ClearAll()
	cmd.Printf("Deleted %d documents\n", count)
	return nil
}

func runDocumentsDownload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	data, err := documentService.Download(args[0])
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", doc.Name, err)
	}

	if documentsOutput == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	out := documentsOutput
	if out == "" {
		out = doc.Name
	}
	if err := os.WriteFile(out, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	cmd.Printf("Saved %s (%s)\n", out, humanize.Bytes(uint64(len(data))))
	return nil
}

func runDocumentsFolders(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	folders := documentService.Folders()
	if len(folders) == 0 {
		cmd.Println("No folders yet.")
		return nil
	}

	counts := make(map[string]int)
	for _, d := range documentService.List() {
		counts[d.Folder]++
	}
	for _, f := range folders {
		cmd.Printf("  %s (%d)\n", f, counts[f])
	}
	return nil
}

func runDocumentsWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	w, err := watch.New(documentService, watch.Config{
		Dir:         args[0],
		Folder:      documentsFolder,
		InitialScan: watchExisting,
		OnAdded: func(records []domain.DocumentRecord) {
			for _, r := range records {
				cmd.Printf("[%s] Added %s\n", time.Now().Format("15:04:05"), r.Name)
			}
		},
	})
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", args[0])
	err = w.Run(cmd.Context())
	documentService.Wait()
	return err
}
