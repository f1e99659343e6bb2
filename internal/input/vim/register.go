package vim

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// RegisterType categorizes registers by their behavior.
type RegisterType uint8

const (
	// RegisterNamed is a named register (a-z, A-Z).
	RegisterNamed RegisterType = iota

	// RegisterNumbered is a numbered register (1-9).
	RegisterNumbered

	// RegisterUnnamed is the default register (").
	RegisterUnnamed

	// RegisterSmallDelete is the small delete register (-).
	RegisterSmallDelete

	// RegisterBlackHole is the black hole register (_).
	RegisterBlackHole

	// RegisterLastInserted is the last inserted text register (.).
	RegisterLastInserted

	// RegisterCommand is the last command register (:).
	RegisterCommand

	// RegisterSearch is the last search pattern register (/).
	RegisterSearch

	// RegisterClipboard is the system clipboard register (+ or *).
	RegisterClipboard

	// RegisterLastYank is the yank register (0).
	RegisterLastYank

	// RegisterInvalid is returned for names that are not registers.
	RegisterInvalid
)

// Register is the content of one register.
type Register struct {
	Name     rune
	Content  string
	Linewise bool
}

// ClipboardProvider abstracts system clipboard access.
type ClipboardProvider interface {
	// Get returns the current clipboard content.
	Get() (string, error)

	// Set sets the clipboard content.
	Set(content string) error
}

// RegisterStore manages all registers.
type RegisterStore struct {
	mu        sync.RWMutex
	registers map[rune]Register
	clipboard ClipboardProvider
}

// NewRegisterStore creates an empty register store.
func NewRegisterStore() *RegisterStore {
	return &RegisterStore{registers: make(map[rune]Register)}
}

// SetClipboard sets the provider for the + and * registers. Without one
// they behave like ordinary registers.
func (rs *RegisterStore) SetClipboard(clipboard ClipboardProvider) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.clipboard = clipboard
}

func (rs *RegisterStore) provider(name rune) ClipboardProvider {
	if name != '+' && name != '*' {
		return nil
	}
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.clipboard
}

// Get returns the content of a register and whether it is linewise.
// Uppercase names read the lowercase register.
func (rs *RegisterStore) Get(name rune) (string, bool) {
	name = unicode.ToLower(name)
	if cb := rs.provider(name); cb != nil {
		content, err := cb.Get()
		if err != nil {
			return "", false
		}
		return content, strings.HasSuffix(content, "\n")
	}

	rs.mu.RLock()
	defer rs.mu.RUnlock()
	reg := rs.registers[name]
	return reg.Content, reg.Linewise
}

// Set stores content in a register. Uppercase named registers append.
// Writes to the black hole and to read-only registers are dropped.
func (rs *RegisterStore) Set(name rune, content string, linewise bool) {
	if unicode.IsUpper(name) {
		rs.Append(unicode.ToLower(name), content, linewise)
		return
	}
	switch GetRegisterType(name) {
	case RegisterBlackHole, RegisterInvalid, RegisterLastInserted, RegisterCommand, RegisterSearch:
		return
	}
	if cb := rs.provider(name); cb != nil {
		_ = cb.Set(content)
		return
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.registers[name] = Register{Name: name, Content: content, Linewise: linewise}
}

// Append adds content to a named register. Linewise content joins with a
// line break; appending linewise text makes the register linewise.
func (rs *RegisterStore) Append(name rune, content string, linewise bool) {
	name = unicode.ToLower(name)
	if GetRegisterType(name) != RegisterNamed && name != '"' {
		rs.Set(name, content, linewise)
		return
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	reg, ok := rs.registers[name]
	if !ok || reg.Content == "" {
		rs.registers[name] = Register{Name: name, Content: content, Linewise: linewise}
		return
	}
	if (reg.Linewise || linewise) && !strings.HasSuffix(reg.Content, "\n") {
		reg.Content += "\n"
	}
	reg.Content += content
	reg.Linewise = reg.Linewise || linewise
	rs.registers[name] = reg
}

// SetYank stores a yank in the target register (or ") and in register 0.
func (rs *RegisterStore) SetYank(name rune, content string, linewise bool) {
	if name == '_' {
		return
	}
	if name != 0 && name != '"' {
		rs.Set(name, content, linewise)
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.registers['0'] = Register{Name: '0', Content: content, Linewise: linewise}
	rs.registers['"'] = Register{Name: '"', Content: content, Linewise: linewise}
}

// SetDelete stores deleted text. Deletes within one line go to the small
// delete register; larger ones rotate the numbered registers 1-9.
func (rs *RegisterStore) SetDelete(name rune, content string, linewise bool) {
	if name == '_' {
		return
	}
	if name != 0 && name != '"' {
		rs.Set(name, content, linewise)
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if !linewise && !strings.Contains(content, "\n") {
		rs.registers['-'] = Register{Name: '-', Content: content}
	} else {
		for i := '9'; i > '1'; i-- {
			if prev, ok := rs.registers[i-1]; ok {
				prev.Name = i
				rs.registers[i] = prev
			}
		}
		rs.registers['1'] = Register{Name: '1', Content: content, Linewise: linewise}
	}
	rs.registers['"'] = Register{Name: '"', Content: content, Linewise: linewise}
}

func (rs *RegisterStore) setReadOnly(name rune, content string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.registers[name] = Register{Name: name, Content: content}
}

// SetLastInserted updates the last inserted text register.
func (rs *RegisterStore) SetLastInserted(content string) {
	rs.setReadOnly('.', content)
}

// SetLastCommand updates the last command register.
func (rs *RegisterStore) SetLastCommand(cmd string) {
	rs.setReadOnly(':', cmd)
}

// SetLastSearch updates the last search pattern register.
func (rs *RegisterStore) SetLastSearch(pattern string) {
	rs.setReadOnly('/', pattern)
}

// All returns every non-empty register sorted by name.
func (rs *RegisterStore) All() []Register {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	out := make([]Register, 0, len(rs.registers))
	for _, reg := range rs.registers {
		if reg.Content != "" {
			out = append(out, reg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Format renders the registers the way :registers lists them.
func (rs *RegisterStore) Format() string {
	var b strings.Builder
	b.WriteString("Type Name Content\n")
	for _, reg := range rs.All() {
		kind := "c"
		if reg.Linewise {
			kind = "l"
		}
		content := strings.ReplaceAll(reg.Content, "\n", "^J")
		if len(content) > 60 {
			content = content[:60]
		}
		fmt.Fprintf(&b, "  %s  \"%c   %s\n", kind, reg.Name, content)
	}
	return b.String()
}

// GetRegisterType returns the type of register for a given name.
func GetRegisterType(name rune) RegisterType {
	switch {
	case name == '"':
		return RegisterUnnamed
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return RegisterNamed
	case name == '0':
		return RegisterLastYank
	case name >= '1' && name <= '9':
		return RegisterNumbered
	case name == '-':
		return RegisterSmallDelete
	case name == '_':
		return RegisterBlackHole
	case name == '.':
		return RegisterLastInserted
	case name == ':':
		return RegisterCommand
	case name == '/':
		return RegisterSearch
	case name == '+', name == '*':
		return RegisterClipboard
	default:
		return RegisterInvalid
	}
}

// IsValidRegister returns true if the register name is valid.
func IsValidRegister(name rune) bool {
	return GetRegisterType(name) != RegisterInvalid
}
