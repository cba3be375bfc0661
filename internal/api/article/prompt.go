package article

import "fmt"

const promptTemplate = `Aja como um especialista em marketing de conteúdo.
Crie um artigo para blog sobre o tema "%s".
O texto deve ter um tom "%s".
Estruture o artigo com introdução, seções de desenvolvimento com subtítulos e uma conclusão.
Não adicione nenhuma informação extra ou metadados após o artigo. Gere apenas o texto do artigo em si.`

// BuildPrompt embeds topic and tone verbatim. Empty values stay empty.
func BuildPrompt(req Request) string {
	return fmt.Sprintf(promptTemplate, req.Topic, req.Tone)
}
