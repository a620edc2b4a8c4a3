package model

// 对话角色常量
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultPersona 新建对话时写入的系统指令
const DefaultPersona = "You are Rafiki, a friendly personal assistant. " +
	"Answer in a short, warm and practical way. " +
	"When search results are provided, ground your answer in them and mention sources where useful."

// Turn 对话中的一条消息
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation 单个用户的完整对话记录
type Conversation struct {
	UserID      string `json:"userId"`
	Turns       []Turn `json:"conversation"`
	LastProject string `json:"lastProject,omitempty"`
	LastTask    string `json:"lastTask,omitempty"`
}

// NewConversation 创建默认对话记录，首条消息固定为 system 指令
func NewConversation(userID, persona string) *Conversation {
	if persona == "" {
		persona = DefaultPersona
	}
	return &Conversation{
		UserID: userID,
		Turns:  []Turn{{Role: RoleSystem, Content: persona}},
	}
}

// Append 按请求顺序追加一条消息
func (c *Conversation) Append(role, content string) {
	c.Turns = append(c.Turns, Turn{Role: role, Content: content})
}

// EnsureSystem 保证首条消息是 system 指令（读到的旧记录可能缺失）
func (c *Conversation) EnsureSystem(persona string) {
	if persona == "" {
		persona = DefaultPersona
	}
	if len(c.Turns) == 0 || c.Turns[0].Role != RoleSystem {
		c.Turns = append([]Turn{{Role: RoleSystem, Content: persona}}, c.Turns...)
	}
}

// Trim 保留 system 指令和最近 max 条消息，避免记录无限增长
func (c *Conversation) Trim(max int) {
	if max <= 0 || len(c.Turns) <= max+1 {
		return
	}
	head := c.Turns[0]
	tail := c.Turns[len(c.Turns)-max:]
	c.Turns = append([]Turn{head}, tail...)
}
