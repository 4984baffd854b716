package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"schoolku_backend/internals/features/home/newsletters/dto"
)

func TestBatches(t *testing.T) {
	list := []string{"a", "b", "c", "d", "e"}
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, Batches(list, 2))
	assert.Nil(t, Batches(nil, 2))
	assert.Len(t, Batches(list, 0), 1)
}

func TestRenderCampaign(t *testing.T) {
	msg := RenderCampaign(dto.CampaignForm{
		Subject: "Fête de fin d'année",
		Body:    "Chers parents,\nla fête aura lieu <samedi>.\n\nMerci.",
	}, "https://ecole.test/newsletter/desinscription")

	assert.Equal(t, "Fête de fin d'année", msg.Subject)
	assert.Contains(t, msg.Text, "Pour vous désinscrire : https://ecole.test/newsletter/desinscription")
	assert.Contains(t, msg.HTML, "&lt;samedi&gt;")
	assert.Contains(t, msg.HTML, "Chers parents,<br>")
	assert.Equal(t, 3, strings.Count(msg.HTML, "<p"))
}
