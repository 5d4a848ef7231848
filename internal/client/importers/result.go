package importers

import "github.com/dmitrijs2005/vaultcore/internal/client/models"

// Result is the outcome of one import. A failed parse is reported with
// Success=false, never as an error.
type Result struct {
	Success             bool
	Ciphers             []models.Cipher
	Folders             []models.Folder
	FolderRelationships []models.FolderRelationship
}

// Failure returns the result of an import whose input could not be read.
func Failure() Result {
	return Result{Ciphers: []models.Cipher{}}
}

// Empty reports a successful import that found no entries.
func (r Result) Empty() bool {
	return r.Success && len(r.Ciphers) == 0
}

// FolderOf returns the folder name assigned to cipher i, or "".
func (r Result) FolderOf(i int) string {
	for _, rel := range r.FolderRelationships {
		if rel.CipherIndex == i && rel.FolderIndex >= 0 && rel.FolderIndex < len(r.Folders) {
			return r.Folders[rel.FolderIndex].Name
		}
	}
	return ""
}

// Builder accumulates ciphers and folders for one import. It is not safe
// for concurrent use; each job owns its builder.
type Builder struct {
	ciphers   []models.Cipher
	folders   []models.Folder
	folderIdx map[string]int
	rels      []models.FolderRelationship
}

func NewBuilder() *Builder {
	return &Builder{folderIdx: make(map[string]int)}
}

// AddCipher appends c and returns its index.
func (b *Builder) AddCipher(c models.Cipher) int {
	b.ciphers = append(b.ciphers, c)
	return len(b.ciphers) - 1
}

// AddFolder returns the index of the folder called name, adding it first if
// needed.
func (b *Builder) AddFolder(name string) int {
	if i, ok := b.folderIdx[name]; ok {
		return i
	}
	b.folders = append(b.folders, models.Folder{Name: name})
	b.folderIdx[name] = len(b.folders) - 1
	return len(b.folders) - 1
}

// AssignFolder links a cipher to a folder by index.
func (b *Builder) AssignFolder(cipherIdx, folderIdx int) {
	b.rels = append(b.rels, models.FolderRelationship{CipherIndex: cipherIdx, FolderIndex: folderIdx})
}

// Finalize returns a deep copy of the accumulated state, so later builder
// calls never reach a handed-out Result.
func (b *Builder) Finalize(success bool) Result {
	r := Result{
		Success:             success,
		Ciphers:             make([]models.Cipher, len(b.ciphers)),
		Folders:             append([]models.Folder{}, b.folders...),
		FolderRelationships: append([]models.FolderRelationship{}, b.rels...),
	}
	for i, c := range b.ciphers {
		r.Ciphers[i] = c.Clone()
	}
	return r
}
