// index.go - The landing page: current listing, upload UI, and a QR
// code encoding the server's reachable URL for phone onboarding.
package server

import (
	"encoding/base64"
	"html/template"
	"log"
	"net/http"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

type indexData struct {
	URL        string
	QR         template.URL
	SharedName string
	Files      []FileEntry
}

// indexHandler renders the landing page. The listing is a live
// re-scan and the QR code is regenerated on every request, so the
// page always reflects the current state. Always responds 200.
func (s *Server) indexHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		files, err := s.store.List()
		if err != nil {
			// Degrade to an empty listing rather than failing the page.
			rid := RequestIDFromContext(r.Context())
			log.Printf("rid=%s msg=list_failed err=%v", rid, err)
			files = nil
		}

		data := indexData{
			URL:        s.cfg.BaseURL,
			QR:         template.URL(qrDataURI(s.cfg.BaseURL)),
			SharedName: filepath.Base(s.store.Root()),
			Files:      files,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTemplate.Execute(w, data); err != nil {
			rid := RequestIDFromContext(r.Context())
			log.Printf("rid=%s msg=render_failed err=%v", rid, err)
		}
	})
}

// qrDataURI encodes url as a QR PNG and returns it as a data: URI
// suitable for an img src. Returns "" if encoding fails; the page
// still renders without the image.
func qrDataURI(url string) string {
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en"><head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Share — Local File Share</title>
<link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.2/dist/css/bootstrap.min.css" rel="stylesheet">
<style>
body{padding-top:30px;background:#f7f7fb}
.share-card{max-width:1000px;margin:auto}
.file-row{display:flex;justify-content:space-between;align-items:center;padding:8px 12px;border-bottom:1px solid #eee}
.drop-area{border:2px dashed #ced4da;border-radius:8px;padding:18px;text-align:center;background:#fff;cursor:pointer;transition:border-color 0.2s}
.drop-area:hover{border-color:#0d6efd}
.small{font-size:.85rem;color:#666}
</style>
</head><body>
<div class="container share-card">
  <div class="card shadow-sm">
    <div class="card-body">
      <div class="d-flex justify-content-between align-items-center mb-3">
        <div>
          <h4 class="mb-0">Share — Local File Share</h4>
          <div class="small">Share files between laptop and phone on the same Wi‑Fi.</div>
        </div>
        <div class="text-end">
          <div class="d-flex align-items-center gap-3">
            <div>
                <div class="small">Server URL</div>
                <div><a href="{{.URL}}">{{.URL}}</a></div>
            </div>
            <button onclick="stopServer()" class="btn btn-outline-danger btn-sm">Stop Server</button>
          </div>
        </div>
      </div>

      <div class="row g-3">
        <div class="col-md-5">
          <div class="card p-3 mb-3">
            <div class="small mb-2">Scan QR to open on mobile</div>
            <div class="text-center">
              <img src="{{.QR}}" alt="QR code" style="max-width:220px" class="img-fluid border rounded" />
            </div>
            <div class="small text-muted mt-2">Scan with your phone camera or QR app.</div>
          </div>

          <div class="card p-3">
            <div class="small mb-2">Upload files (drag & drop or click)</div>
            <div id="drop" class="drop-area mb-2">Drop files here or click to choose</div>
            <input id="fileInput" type="file" multiple style="display:none" />

            <div id="progressContainer" class="mt-3" style="display:none;">
                <div class="d-flex justify-content-between small mb-1">
                    <span id="uploadStatusText">Starting...</span>
                    <span id="percentText">0%</span>
                </div>
                <div class="progress" style="height: 10px;">
                    <div id="progressBar" class="progress-bar progress-bar-striped progress-bar-animated" role="progressbar" style="width: 0%"></div>
                </div>
            </div>

            <div id="finalStatus" class="small text-success mt-2"></div>
          </div>
        </div>

        <div class="col-md-7">
          <div class="card p-3">
            <div class="d-flex justify-content-between align-items-center mb-2">
              <div><strong>Shared files</strong></div>
              <div class="small text-muted">/{{.SharedName}}</div>
            </div>
            <div id="filesList">
              {{if .Files}}{{range .Files}}
                <div class="file-row">
                  <div style="overflow:hidden;text-overflow:ellipsis;white-space:nowrap;max-width:60%"><a href="/files/{{.Name}}">{{.Name}}</a></div>
                  <div class="small text-muted">{{.DisplaySize}}</div>
                  <div>
                    <a class="btn btn-sm btn-outline-primary" href="/files/{{.Name}}" download>Down</a>
                    <button class="btn btn-sm btn-outline-danger ms-1" data-f="{{.Name}}" onclick="deleteFile(event,this)">Del</button>
                  </div>
                </div>
              {{end}}{{else}}
                <div class="small text-muted mt-2">No files yet — upload something.</div>
              {{end}}
            </div>
          </div>
        </div>
      </div>

    </div>
    <div class="card-footer small text-muted text-center">Tip: Keep this page open on your laptop while scanning from phone.</div>
  </div>
</div>

<script>
const drop = document.getElementById('drop');
const fileInput = document.getElementById('fileInput');
const progressContainer = document.getElementById('progressContainer');
const progressBar = document.getElementById('progressBar');
const uploadStatusText = document.getElementById('uploadStatusText');
const percentText = document.getElementById('percentText');
const finalStatus = document.getElementById('finalStatus');

drop.addEventListener('click', ()=> fileInput.click());
drop.addEventListener('dragover', e=>{ e.preventDefault(); drop.style.borderColor='#0d6efd'; drop.style.backgroundColor='#f8f9fa'; });
drop.addEventListener('dragleave', e=>{ e.preventDefault(); drop.style.borderColor=''; drop.style.backgroundColor='#fff'; });
drop.addEventListener('drop', e=>{
  e.preventDefault();
  drop.style.borderColor='';
  drop.style.backgroundColor='#fff';
  uploadFiles(Array.from(e.dataTransfer.files));
});
fileInput.addEventListener('change', ()=>{ uploadFiles(Array.from(fileInput.files)); fileInput.value=null; });

function uploadFiles(files){
  if(files.length===0) return;

  progressContainer.style.display = 'block';
  progressBar.style.width = '0%';
  percentText.textContent = '0%';
  uploadStatusText.textContent = 'Uploading ' + files.length + ' file(s)...';
  finalStatus.textContent = '';

  const form = new FormData();
  files.forEach(f=> form.append('file', f));

  const xhr = new XMLHttpRequest();
  xhr.open('POST', '/upload', true);

  xhr.upload.onprogress = function(e) {
    if (e.lengthComputable) {
      const percentComplete = Math.round((e.loaded / e.total) * 100);
      progressBar.style.width = percentComplete + '%';
      percentText.textContent = percentComplete + '%';
      uploadStatusText.textContent = percentComplete + '% Shared';
    }
  };

  xhr.onload = function() {
    if (xhr.status >= 200 && xhr.status < 400) {
      progressBar.style.width = '100%';
      percentText.textContent = '100%';
      uploadStatusText.textContent = 'Processing...';
      setTimeout(() => {
          finalStatus.textContent = 'Upload complete!';
          progressContainer.style.display = 'none';
          location.reload();
      }, 800);
    } else {
      uploadStatusText.textContent = 'Error';
      finalStatus.textContent = 'Upload failed.';
    }
  };

  xhr.onerror = function() {
    uploadStatusText.textContent = 'Error';
    finalStatus.textContent = 'Network error occurred.';
  };

  xhr.send(form);
}

async function deleteFile(e, el){
  e.preventDefault();
  const f = el.getAttribute('data-f');
  if(!confirm('Delete ' + f + ' ?')) return;
  try{
    const res = await fetch('/delete/' + encodeURIComponent(f));
    if(res.ok) location.reload();
  }catch(err){ console.error(err); alert('Delete failed'); }
}

async function stopServer() {
    if(!confirm("Are you sure you want to stop the server? This will close the connection for everyone.")) return;
    try {
        await fetch('/shutdown', {method: 'POST'});
        document.body.innerHTML = '<div style="display:flex;justify-content:center;align-items:center;height:100vh;flex-direction:column;"><h2>Server Stopped</h2><p>You can close this tab now.</p></div>';
    } catch(e) {
        alert("Failed to stop server or server already stopped.");
    }
}
</script>
</body></html>
`))
